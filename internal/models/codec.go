package models

import (
	"encoding/json"
	"errors"
	"time"
)

// This file maps every entity to and from its JSON document form.
//
// Decoding never fails on a well-formed JSON object: each field is read
// through a typed accessor that falls back to the entity's documented
// default when the field is missing or carries the wrong type. Timestamps
// that cannot be parsed decode to the zero time, which the rest of the
// system treats as "invalid".

// ErrNotDocument is returned when a byte stream is not a JSON object.
var ErrNotDocument = errors.New("not a user data document")

// RFC3339Nano keeps sub-second precision across a round trip and still
// parses timestamps written without a fractional part.
const timeLayout = time.RFC3339Nano

func strField(obj map[string]any, key, def string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return def
}

func boolField(obj map[string]any, key string, def bool) bool {
	if v, ok := obj[key].(bool); ok {
		return v
	}
	return def
}

func numField(obj map[string]any, key string) float64 {
	if v, ok := obj[key].(float64); ok {
		return v
	}
	return 0
}

// timeField parses an RFC 3339 timestamp, decoding anything else to the
// zero time sentinel.
func timeField(obj map[string]any, key string) time.Time {
	raw, ok := obj[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func arrayField(obj map[string]any, key string) []any {
	if v, ok := obj[key].([]any); ok {
		return v
	}
	return nil
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func (c Category) toObject() map[string]any {
	return map[string]any{
		"id":   c.ID,
		"name": c.Name,
		"kind": string(c.Kind),
	}
}

func categoryFromObject(obj map[string]any) Category {
	return Category{
		ID:   strField(obj, "id", ""),
		Name: strField(obj, "name", ""),
		Kind: kindFromString(strField(obj, "kind", "")),
	}
}

// kindFromString restores the income/expense discriminator, treating
// anything unrecognized as an expense.
func kindFromString(value string) BillKind {
	if value == string(KindIncome) {
		return KindIncome
	}
	return KindExpense
}

func (b Bill) toObject() map[string]any {
	return map[string]any{
		"id":         b.ID,
		"amount":     b.Amount,
		"categoryId": b.CategoryID,
		"note":       b.Note,
		"timestamp":  encodeTime(b.Timestamp),
		"kind":       string(b.Kind),
	}
}

func billFromObject(obj map[string]any) Bill {
	return Bill{
		ID:         strField(obj, "id", ""),
		Amount:     numField(obj, "amount"),
		CategoryID: strField(obj, "categoryId", ""),
		Note:       strField(obj, "note", ""),
		Timestamp:  timeField(obj, "timestamp"),
		Kind:       kindFromString(strField(obj, "kind", "")),
	}
}

func (r Reminder) toObject() map[string]any {
	return map[string]any{
		"id":       r.ID,
		"message":  r.Message,
		"remindAt": encodeTime(r.RemindAt),
		"enabled":  r.Enabled,
	}
}

func reminderFromObject(obj map[string]any) Reminder {
	return Reminder{
		ID:       strField(obj, "id", ""),
		Message:  strField(obj, "message", ""),
		RemindAt: timeField(obj, "remindAt"),
		Enabled:  boolField(obj, "enabled", true),
	}
}

func (c Comment) toObject() map[string]any {
	return map[string]any{
		"id":        c.ID,
		"authorId":  c.AuthorID,
		"content":   c.Content,
		"createdAt": encodeTime(c.CreatedAt),
	}
}

func commentFromObject(obj map[string]any) Comment {
	return Comment{
		ID:        strField(obj, "id", ""),
		AuthorID:  strField(obj, "authorId", ""),
		Content:   strField(obj, "content", ""),
		CreatedAt: timeField(obj, "createdAt"),
	}
}

func (p SocialPost) toObject() map[string]any {
	comments := make([]any, 0, len(p.Comments))
	for _, comment := range p.Comments {
		comments = append(comments, comment.toObject())
	}
	return map[string]any{
		"id":         p.ID,
		"authorId":   p.AuthorID,
		"content":    p.Content,
		"visibility": p.Visibility,
		"createdAt":  encodeTime(p.CreatedAt),
		"comments":   comments,
	}
}

func postFromObject(obj map[string]any) SocialPost {
	post := SocialPost{
		ID:         strField(obj, "id", ""),
		AuthorID:   strField(obj, "authorId", ""),
		Content:    strField(obj, "content", ""),
		Visibility: strField(obj, "visibility", VisibilityPublic),
		CreatedAt:  timeField(obj, "createdAt"),
	}
	for _, value := range arrayField(obj, "comments") {
		if entry, ok := value.(map[string]any); ok {
			post.Comments = append(post.Comments, commentFromObject(entry))
		}
	}
	return post
}

func (p UserProfile) toObject() map[string]any {
	friends := make([]any, 0, len(p.FriendIDs))
	for _, id := range p.FriendIDs {
		friends = append(friends, id)
	}
	return map[string]any{
		"id":                   p.ID,
		"username":             p.Username,
		"email":                p.Email,
		"passwordHash":         p.PasswordHash,
		"notificationsEnabled": p.NotificationsEnabled,
		"privacyLevel":         p.PrivacyLevel,
		"friendIds":            friends,
	}
}

func profileFromObject(obj map[string]any) UserProfile {
	profile := UserProfile{
		ID:                   strField(obj, "id", ""),
		Username:             strField(obj, "username", ""),
		Email:                strField(obj, "email", ""),
		PasswordHash:         strField(obj, "passwordHash", ""),
		NotificationsEnabled: boolField(obj, "notificationsEnabled", true),
		PrivacyLevel:         strField(obj, "privacyLevel", PrivacyFriends),
	}
	for _, value := range arrayField(obj, "friendIds") {
		if id, ok := value.(string); ok {
			profile.FriendIDs = append(profile.FriendIDs, id)
		}
	}
	return profile
}

// EncodeUserData serializes a whole user document. Encoding is total:
// the assembled object only contains strings, numbers, booleans and
// arrays of those, so marshaling cannot fail.
func EncodeUserData(data UserData) []byte {
	categories := make([]any, 0, len(data.Categories))
	for _, category := range data.Categories {
		categories = append(categories, category.toObject())
	}
	bills := make([]any, 0, len(data.Bills))
	for _, bill := range data.Bills {
		bills = append(bills, bill.toObject())
	}
	reminders := make([]any, 0, len(data.Reminders))
	for _, reminder := range data.Reminders {
		reminders = append(reminders, reminder.toObject())
	}
	posts := make([]any, 0, len(data.Posts))
	for _, post := range data.Posts {
		posts = append(posts, post.toObject())
	}

	doc, _ := json.MarshalIndent(map[string]any{
		"profile":    data.Profile.toObject(),
		"categories": categories,
		"bills":      bills,
		"reminders":  reminders,
		"posts":      posts,
	}, "", "  ")
	return append(doc, '\n')
}

// DecodeUserData restores a user document. It fails only when the input
// is not a JSON object; missing or mistyped fields inside a well-formed
// document resolve to their defaults.
func DecodeUserData(raw []byte) (UserData, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return UserData{}, ErrNotDocument
	}

	var data UserData
	if profile, ok := obj["profile"].(map[string]any); ok {
		data.Profile = profileFromObject(profile)
	} else {
		data.Profile = profileFromObject(map[string]any{})
	}
	for _, value := range arrayField(obj, "categories") {
		if entry, ok := value.(map[string]any); ok {
			data.Categories = append(data.Categories, categoryFromObject(entry))
		}
	}
	for _, value := range arrayField(obj, "bills") {
		if entry, ok := value.(map[string]any); ok {
			data.Bills = append(data.Bills, billFromObject(entry))
		}
	}
	for _, value := range arrayField(obj, "reminders") {
		if entry, ok := value.(map[string]any); ok {
			data.Reminders = append(data.Reminders, reminderFromObject(entry))
		}
	}
	for _, value := range arrayField(obj, "posts") {
		if entry, ok := value.(map[string]any); ok {
			data.Posts = append(data.Posts, postFromObject(entry))
		}
	}
	return data, nil
}
