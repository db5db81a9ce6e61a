// Package assets signs stored profile asset URLs for the client.
package assets

import "strings"

// Signer appends the shared access token to asset URLs.
type Signer struct {
	AccessToken string `yaml:"accessToken" mapstructure:"accessToken"`
}

// WithAccessToken returns url with the access token appended as a query
// string. Empty urls and an empty token leave url unchanged.
func (s Signer) WithAccessToken(url string) string {
	if url == "" || s.AccessToken == "" {
		return url
	}
	token := strings.TrimPrefix(s.AccessToken, "?")
	if strings.Contains(url, "?") {
		return url + "&" + token
	}
	return url + "?" + token
}
