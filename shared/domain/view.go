package domain

import (
	"encoding/json"
	"time"
)

// Author is an author reference prepared for output.
// Encodes as the full profile when it was resolved and as the bare id otherwise.
type Author struct {
	Id      UserId
	Profile *UserProfile
}

func (a Author) MarshalJSON() ([]byte, error) {
	if a.Profile == nil {
		return json.Marshal(a.Id)
	}
	return json.Marshal(a.Profile)
}

func (a *Author) UnmarshalJSON(data []byte) error {
	var id UserId
	if err := json.Unmarshal(data, &id); err == nil {
		*a = Author{Id: id}
		return nil
	}
	var profile UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return err
	}
	*a = Author{Id: profile.Id, Profile: &profile}
	return nil
}

type CommentView struct {
	Id        CommentId   `json:"id"`
	Text      CommentText `json:"text"`
	TextHTML  string      `json:"text_html,omitempty"`
	Author    Author      `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
}

type HootView struct {
	Id        HootId        `json:"id"`
	Title     HootTitle     `json:"title"`
	Text      HootText      `json:"text"`
	TextHTML  string        `json:"text_html,omitempty"`
	Author    Author        `json:"author"`
	Comments  []CommentView `json:"comments"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
