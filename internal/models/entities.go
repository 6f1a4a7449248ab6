package models

import "time"

// BillKind discriminates income from expense on categories and bills.
type BillKind string

const (
	KindIncome  BillKind = "income"
	KindExpense BillKind = "expense"
)

// Post visibility levels.
const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
)

// PrivacyFriends is the default privacy level for new profiles.
const PrivacyFriends = "friends"

// Category is a user-defined bucket that bills are filed under.
type Category struct {
	ID   string
	Name string
	Kind BillKind
}

// Bill is a single income or expense record.
type Bill struct {
	ID         string
	Amount     float64
	CategoryID string
	Note       string
	Timestamp  time.Time
	Kind       BillKind
}

// Reminder is a user-scheduled notification. A reminder with a zero
// RemindAt has no valid trigger time yet.
type Reminder struct {
	ID       string
	Message  string
	RemindAt time.Time
	Enabled  bool
}

// Comment on a social post. AuthorID refers to another user's profile
// and is not validated against this user's data.
type Comment struct {
	ID        string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}

// SocialPost is a timeline entry with its comments in insertion order.
type SocialPost struct {
	ID         string
	AuthorID   string
	Content    string
	Visibility string
	CreatedAt  time.Time
	Comments   []Comment
}

// UserProfile holds account identity, settings and the friend relation.
// Friendship is meant to be symmetric; a one-sided entry can be left
// behind by an interrupted friend update and is not trusted by readers.
type UserProfile struct {
	ID                   string
	Username             string
	Email                string
	PasswordHash         string
	NotificationsEnabled bool
	PrivacyLevel         string
	FriendIDs            []string
}

// UserData is the unit of persistence: everything one user owns,
// loaded and saved as a whole.
type UserData struct {
	Profile    UserProfile
	Categories []Category
	Bills      []Bill
	Reminders  []Reminder
	Posts      []SocialPost
}
