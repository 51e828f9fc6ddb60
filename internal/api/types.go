package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

const anonymousName = "Anonymous"

// Records may carry their id as "_id" or "id"; both decode into ID.
type User struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	Name           string   `json:"name,omitempty"`
	Role           string   `json:"role"`
	Campus         string   `json:"campus,omitempty"`
	Specialization []string `json:"specialization,omitempty"`
	Points         int      `json:"points"`
	StreakCount    int      `json:"streakCount"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.alias)
	u.ID = pickID(raw.ID, raw.MongoID)
	return nil
}

func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// LoginResult accepts both {token, user} and the flattened {token, ...user}.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (r *LoginResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Token = raw.Token
	source := []byte(raw.User)
	if len(source) == 0 || bytes.Equal(source, []byte("null")) {
		source = data
	}
	return json.Unmarshal(source, &r.User)
}

// Ref points at another user. A bare string decodes as the id.
type Ref struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	var id string
	if json.Unmarshal(data, &id) == nil {
		*r = Ref{ID: id}
		return nil
	}
	type alias Ref
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Ref(raw.alias)
	r.ID = pickID(raw.ID, raw.MongoID)
	return nil
}

func (r Ref) Display() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Email != "":
		return r.Email
	default:
		return r.ID
	}
}

// Author is a forum author. A bare string, or null, is the anonymous marker.
type Author struct {
	Ref
	Anonymous bool `json:"anonymous,omitempty"`
}

func (a *Author) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*a = Author{Anonymous: true}
		return nil
	}
	var name string
	if json.Unmarshal(trimmed, &name) == nil {
		*a = Author{Anonymous: true}
		if name != "" && name != anonymousName {
			a.Name = name
			a.Anonymous = false
		}
		return nil
	}
	var ref Ref
	if err := json.Unmarshal(trimmed, &ref); err != nil {
		return err
	}
	var flag struct {
		Anonymous bool `json:"anonymous"`
	}
	if err := json.Unmarshal(trimmed, &flag); err != nil {
		return err
	}
	*a = Author{Ref: ref, Anonymous: flag.Anonymous}
	return nil
}

func (a Author) Display() string {
	if a.Anonymous {
		return anonymousName
	}
	return a.Ref.Display()
}

type Counsellor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Title          string   `json:"title"`
	Specialization []string `json:"specialization"`
	Location       string   `json:"location"`
	Campus         string   `json:"campus"`
	AvailableDays  []string `json:"availableDays"`
	AvailableHours string   `json:"availableHours"`
	Languages      []string `json:"languages"`
}

// UnmarshalJSON fills the directory defaults for fields the backend omits.
func (c *Counsellor) UnmarshalJSON(data []byte) error {
	type alias Counsellor
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Counsellor(raw.alias)
	c.ID = pickID(raw.ID, raw.MongoID)

	if c.Name == "" {
		c.Name = c.Email
	}
	if c.Title == "" {
		c.Title = "Counsellor"
		if len(c.Specialization) > 0 && c.Specialization[0] != "" {
			c.Title = c.Specialization[0]
		}
	}
	if c.Specialization == nil {
		c.Specialization = []string{}
	}
	if c.Location == "" {
		c.Location = "Counselling Center"
	}
	if c.Campus == "" {
		c.Campus = "Main Campus"
	}
	if len(c.AvailableDays) == 0 {
		c.AvailableDays = []string{"Monday", "Wednesday", "Friday"}
	}
	if c.AvailableHours == "" {
		c.AvailableHours = "9:00 AM - 5:00 PM"
	}
	if len(c.Languages) == 0 {
		c.Languages = []string{"English"}
	}
	return nil
}

// LastName is the final word of the display name, used in availability
// messages.
func (c Counsellor) LastName() string {
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return c.Email
	}
	return fields[len(fields)-1]
}

type Appointment struct {
	ID         string    `json:"id"`
	Student    Ref       `json:"student"`
	Counsellor Ref       `json:"counsellor"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (a *Appointment) UnmarshalJSON(data []byte) error {
	type alias Appointment
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Appointment(raw.alias)
	a.ID = pickID(raw.ID, raw.MongoID)
	return nil
}

type Alert struct {
	ID        string    `json:"id"`
	Student   *Ref      `json:"student,omitempty"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *Alert) UnmarshalJSON(data []byte) error {
	type alias Alert
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Alert(raw.alias)
	a.ID = pickID(raw.ID, raw.MongoID)
	return nil
}

type Gamification struct {
	Points        int `json:"points"`
	StreakCount   int `json:"streakCount"`
	PointsAwarded int `json:"pointsAwarded"`
}

type MoodResult struct {
	Gamification Gamification `json:"gamification"`
}

type MoodDay struct {
	Day  string `json:"day"`
	Mood int    `json:"mood"`
}

type MoodStats struct {
	History7d   []MoodDay `json:"history7d"`
	Points      int       `json:"points"`
	StreakCount int       `json:"streakCount"`
}

type Reply struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Reply) UnmarshalJSON(data []byte) error {
	type alias Reply
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Reply(raw.alias)
	r.ID = pickID(raw.ID, raw.MongoID)
	return nil
}

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Author      Author    `json:"author"`
	IsAnonymous bool      `json:"isAnonymous"`
	Tags        []string  `json:"tags"`
	Likes       []string  `json:"likes"`
	Replies     []Reply   `json:"replies"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *Post) UnmarshalJSON(data []byte) error {
	type alias Post
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Post(raw.alias)
	p.ID = pickID(raw.ID, raw.MongoID)
	if p.IsAnonymous {
		p.Author.Anonymous = true
	}
	return nil
}

func (p Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

type NewPost struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category,omitempty"`
	IsAnonymous bool     `json:"isAnonymous"`
	Tags        []string `json:"tags,omitempty"`
}

type Voucher struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PointsCost  int    `json:"pointsCost"`
	Code        string `json:"code"`
	Stock       int    `json:"stock"`
}

func (v *Voucher) UnmarshalJSON(data []byte) error {
	type alias Voucher
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = Voucher(raw.alias)
	v.ID = pickID(raw.ID, raw.MongoID)
	return nil
}

type RedeemResult struct {
	Redemption struct {
		Code string `json:"code"`
	} `json:"redemption"`
	RemainingPoints int `json:"remainingPoints"`
}

type Overview struct {
	TotalUsers           int `json:"totalUsers"`
	Counsellors          int `json:"counsellors"`
	Students             int `json:"students"`
	Admins               int `json:"admins"`
	UpcomingAppointments int `json:"upcomingAppointments"`
}

type WeeklyTrend struct {
	Label   string `json:"label"`
	Happy   int    `json:"happy"`
	Sad     int    `json:"sad"`
	Neutral int    `json:"neutral"`
}

type CampusCount struct {
	Campus      string `json:"campus"`
	Counsellors int    `json:"counsellors"`
}

func pickID(id, mongoID string) string {
	if id != "" {
		return id
	}
	return mongoID
}
