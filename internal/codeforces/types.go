package codeforces

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TagList is a set of problem topic tags. The upstream API serves tags as a
// JSON array of strings, but cached or re-serialized copies sometimes carry a
// single delimited string instead. Both forms decode to the same []string.
//
// Parse rule for the string form: split on ',' and ';', trim whitespace,
// drop empty entries.
type TagList []string

// UnmarshalJSON accepts either ["dp","graphs"] or "dp, graphs".
func (t *TagList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*t = normalizeTags(asList)
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*t = splitTags(asString)
		return nil
	}

	return fmt.Errorf("tags must be a string array or a delimited string")
}

// Contains reports whether the list carries the given tag.
func (t TagList) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}

func splitTags(raw string) []string {
	raw = strings.ReplaceAll(raw, ";", ",")
	return normalizeTags(strings.Split(raw, ","))
}

// UnixTime decodes the API's integer-seconds timestamps. A missing field
// leaves the zero value, which callers treat as "no timestamp".
type UnixTime struct {
	time.Time
}

// UnmarshalJSON decodes seconds since the Unix epoch.
func (u *UnixTime) UnmarshalJSON(data []byte) error {
	var secs int64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("timestamp must be integer seconds: %w", err)
	}
	u.Time = time.Unix(secs, 0)
	return nil
}

// MarshalJSON encodes back to seconds; zero time encodes as null.
func (u UnixTime) MarshalJSON() ([]byte, error) {
	if u.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(u.Unix())
}

// UserProfile is a snapshot of a user's public profile.
type UserProfile struct {
	Handle     string `json:"handle"`
	Rank       string `json:"rank"`
	Rating     *int   `json:"rating,omitempty"`
	MaxRating  *int   `json:"maxRating,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	TitlePhoto string `json:"titlePhoto,omitempty"`
}

// AvatarURL returns the best available avatar image URL.
func (u *UserProfile) AvatarURL() string {
	if u.Avatar != "" {
		return u.Avatar
	}
	return u.TitlePhoto
}

// Problem is one entry of the problemset catalog.
type Problem struct {
	ContestID int     `json:"contestId,omitempty"`
	Index     string  `json:"index,omitempty"`
	Name      string  `json:"name"`
	Rating    *int    `json:"rating,omitempty"`
	Tags      TagList `json:"tags"`
}

// Link derives the problemset URL. Empty when contest id or index is missing.
func (p Problem) Link() string {
	if p.ContestID == 0 || p.Index == "" {
		return ""
	}
	return fmt.Sprintf("https://codeforces.com/problemset/problem/%d/%s", p.ContestID, p.Index)
}

// Submission is one row of a user's submission history, flattened from the
// API's nested problem object into the tabular shape the analytics consume.
type Submission struct {
	ID            int64     `json:"id"`
	ContestID     int       `json:"contestId,omitempty"`
	ProblemName   string    `json:"problemName"`
	ProblemRating *int      `json:"problemRating,omitempty"`
	ProblemIndex  string    `json:"problemIndex,omitempty"`
	Tags          TagList   `json:"tags"`
	Verdict       string    `json:"verdict,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	URL           string    `json:"url,omitempty"`
}

// Solved reports whether the submission was accepted.
func (s Submission) Solved() bool {
	return s.Verdict == VerdictOK
}

// VerdictOK is the accepted verdict; every other verdict counts as unsolved.
const VerdictOK = "OK"

// RatingPoint is one contest result in a user's rating history.
type RatingPoint struct {
	ContestID   int      `json:"contestId"`
	ContestName string   `json:"contestName,omitempty"`
	NewRating   int      `json:"newRating"`
	UpdatedAt   UnixTime `json:"ratingUpdateTimeSeconds"`
}

// submissionDTO mirrors the wire shape of a user.status entry.
type submissionDTO struct {
	ID                  int64    `json:"id"`
	ContestID           int      `json:"contestId"`
	CreationTimeSeconds UnixTime `json:"creationTimeSeconds"`
	Verdict             string   `json:"verdict"`
	Problem             Problem  `json:"problem"`
}

func (d submissionDTO) flatten() Submission {
	s := Submission{
		ID:            d.ID,
		ContestID:     d.ContestID,
		ProblemName:   d.Problem.Name,
		ProblemRating: d.Problem.Rating,
		ProblemIndex:  d.Problem.Index,
		Tags:          d.Problem.Tags,
		Verdict:       d.Verdict,
	}
	if !d.CreationTimeSeconds.IsZero() {
		s.CreatedAt = d.CreationTimeSeconds.Time
	}
	if d.ContestID != 0 && d.Problem.Index != "" {
		s.URL = fmt.Sprintf("https://codeforces.com/problemset/problem/%d/%s", d.ContestID, d.Problem.Index)
	}
	return s
}
