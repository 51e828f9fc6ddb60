package model

import "time"

const (
	RoleStudent    = "student"
	RoleCounsellor = "counsellor"
	RoleAdmin      = "admin"
)

const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

const (
	AlertCritical = "critical"
	AlertWarning  = "warning"
)

// AnonymousAuthor is rendered in place of the author of anonymous posts.
const AnonymousAuthor = "Anonymous"

// Record ids are emitted as "_id" to match the production backend.
type User struct {
	ID             string    `json:"_id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name,omitempty"`
	Role           string    `json:"role"`
	Campus         string    `json:"campus,omitempty"`
	Specialization []string  `json:"specialization,omitempty"`
	AvailableDays  []string  `json:"availableDays,omitempty"`
	AvailableHours string    `json:"availableHours,omitempty"`
	Languages      []string  `json:"languages,omitempty"`
	Points         int       `json:"points"`
	StreakCount    int       `json:"streakCount"`
	LastCheckInDay string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type UserRef struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

func (u User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Email: u.Email, Role: u.Role}
}

type Appointment struct {
	ID           string    `json:"_id"`
	StudentID    string    `json:"-"`
	CounsellorID string    `json:"-"`
	Student      *UserRef  `json:"student,omitempty"`
	Counsellor   *UserRef  `json:"counsellor,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Alert struct {
	ID        string    `json:"_id"`
	StudentID *string   `json:"-"`
	Student   *UserRef  `json:"student,omitempty"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

type Mood struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	Mood      string    `json:"mood"`
	Source    string    `json:"source"`
	Day       string    `json:"day"`
	CreatedAt time.Time `json:"createdAt"`
}

// MoodDay is one bar of the seven day chart. Mood is 0 for days without a
// check-in, otherwise 1 (Sad), 2 (Okay) or 3 (Happy).
type MoodDay struct {
	Day  string `json:"day"`
	Mood int    `json:"mood"`
}

type Gamification struct {
	Points        int `json:"points"`
	StreakCount   int `json:"streakCount"`
	PointsAwarded int `json:"pointsAwarded"`
}

type MoodStats struct {
	History7d   []MoodDay `json:"history7d"`
	Points      int       `json:"points"`
	StreakCount int       `json:"streakCount"`
}

type ForumReply struct {
	ID        string      `json:"_id"`
	AuthorID  *string     `json:"-"`
	Author    interface{} `json:"author"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ForumPost struct {
	ID          string       `json:"_id"`
	AuthorID    *string      `json:"-"`
	Author      interface{}  `json:"author"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Category    string       `json:"category"`
	IsAnonymous bool         `json:"isAnonymous"`
	Tags        []string     `json:"tags"`
	Likes       []string     `json:"likes"`
	Replies     []ForumReply `json:"replies"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type Voucher struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PointsCost  int    `json:"pointsCost"`
	Code        string `json:"code"`
	Stock       int    `json:"stock"`
}

type Redemption struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	VoucherID string    `json:"voucher"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
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
