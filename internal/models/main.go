// Package models defines the core data structures for users, blog posts,
// sessions and weather snapshots.
package models

import "time"

// NoFilter is the category filter value that shows every post.
const NoFilter = "None"

// DateLayout is the layout used for BlogPost.DateCreated.
const DateLayout = "1/2/2006, 3:04:05 PM"

// User represents an application user with credentials.
type User struct {
	// ID is the unique username chosen at sign-up.
	ID string
	// PasswordHash is the bcrypt digest of the user's password.
	PasswordHash string
	// DisplayName is the free-text name shown on posts.
	DisplayName string
}

// BlogPost is a single post on the board.
type BlogPost struct {
	// ID is assigned by the store.
	ID int64
	// CreatorName is a copy of the author's display name at creation time.
	CreatorName string
	// CreatorID references the author's User.ID.
	CreatorID string
	Title     string
	Body      string
	// DateCreated is the creation (or last update) time formatted with DateLayout.
	DateCreated string
	Category    string
}

// OwnedBy reports whether the post was created by userID.
func (p BlogPost) OwnedBy(userID string) bool {
	return userID != "" && p.CreatorID == userID
}

// Session holds per-browser state: who is signed in and which category
// the home page is filtered by.
type Session struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id,omitempty"`
	DisplayName    string    `json:"display_name,omitempty"`
	CategoryFilter string    `json:"category_filter"`
	// Flash is shown once on the next rendered page.
	Flash     string    `json:"flash,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignedIn reports whether a user is attached to the session.
func (s *Session) SignedIn() bool {
	return s != nil && s.UserID != ""
}

// SignIn attaches the user to the session.
func (s *Session) SignIn(u *User) {
	s.UserID = u.ID
	s.DisplayName = u.DisplayName
}

// SignOut detaches the user from the session.
func (s *Session) SignOut() {
	s.UserID = ""
	s.DisplayName = ""
}

// PopFlash returns the pending flash message and clears it.
func (s *Session) PopFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}

// WeatherSnapshot is the reshaped current-weather response.
type WeatherSnapshot struct {
	Temp                 float64
	TempMin              float64
	TempMax              float64
	Humidity             int
	ConditionMain        string
	ConditionDescription string
	IconCode             string
}
