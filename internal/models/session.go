// internal/models/session.go
package models

import "encoding/json"

// Session is the authenticated identity bundle. It is persisted as four storage keys
// that are always written and cleared together.
type Session struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	UserInfo     json.RawMessage `json:"user_info"`
	UserType     UserType        `json:"user_type"`
}

// Entries renders the session as storage key/value pairs.
func (s *Session) Entries() map[string]string {
	info := string(s.UserInfo)
	if info == "" {
		info = "null"
	}
	return map[string]string{
		KeyAccessToken:  s.AccessToken,
		KeyRefreshToken: s.RefreshToken,
		KeyUserInfo:     info,
		KeyUserType:     string(s.UserType),
	}
}

// UserSummary is the subset of user_info the navigation shows.
type UserSummary struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (s *Session) User() UserSummary {
	var u UserSummary
	_ = json.Unmarshal(s.UserInfo, &u)
	return u
}
