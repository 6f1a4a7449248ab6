package ledger

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/w-yuning/bookeeper/internal/models"

	"github.com/google/uuid"
)

// PublishPost appends a new post to the author's document. Content that
// is empty after trimming is rejected; the content itself is stored
// untrimmed.
func (s *Service) PublishPost(userID, content, visibility string) (models.SocialPost, error) {
	if strings.TrimSpace(content) == "" {
		return models.SocialPost{}, ErrEmptyContent
	}

	data, err := s.store.LoadUser(userID)
	if err != nil {
		return models.SocialPost{}, fmt.Errorf("load user: %w", err)
	}

	post := models.SocialPost{
		ID:         uuid.NewString(),
		AuthorID:   userID,
		Content:    content,
		Visibility: visibility,
		CreatedAt:  time.Now().UTC(),
	}
	data.Posts = append(data.Posts, post)

	if err := s.store.SaveUser(data); err != nil {
		return models.SocialPost{}, err
	}
	return post, nil
}

// AddComment appends a comment to a post in the owner's document. The
// comment lives with the post owner's record, never the commenter's.
func (s *Service) AddComment(userID, postOwnerID, postID, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, ErrEmptyContent
	}

	ownerData, err := s.store.LoadUser(postOwnerID)
	if err != nil {
		return models.Comment{}, fmt.Errorf("load post owner: %w", err)
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		AuthorID:  userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	attached := false
	for i := range ownerData.Posts {
		if ownerData.Posts[i].ID == postID {
			ownerData.Posts[i].Comments = append(ownerData.Posts[i].Comments, comment)
			attached = true
			break
		}
	}
	if !attached {
		return models.Comment{}, ErrPostNotFound
	}

	if err := s.store.SaveUser(ownerData); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// Timeline assembles the posts visible to a user: all of their own, plus
// every other user's public posts, plus friends-only posts from mutual
// friends. The result is sorted by creation time, most recent first;
// relative order among equal timestamps is unspecified.
//
// Every other user's document is loaded in full, an O(users) scan per
// call.
func (s *Service) Timeline(userID string) ([]models.SocialPost, error) {
	viewerData, err := s.store.LoadUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	posts := append([]models.SocialPost(nil), viewerData.Posts...)
	for _, profile := range s.store.ListProfiles() {
		if profile.ID == userID {
			continue
		}
		authorData, err := s.store.LoadUser(profile.ID)
		if err != nil {
			continue
		}

		// Friendship only counts when both sides record it; a one-sided
		// edge can be left behind by an interrupted AddFriend.
		mutual := slices.Contains(viewerData.Profile.FriendIDs, profile.ID) &&
			slices.Contains(authorData.Profile.FriendIDs, userID)

		for _, post := range authorData.Posts {
			if post.Visibility == models.VisibilityPublic ||
				(post.Visibility == models.VisibilityFriends && mutual) {
				posts = append(posts, post)
			}
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}
