package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"playto.com/communityfeed/internal/bootstrap"
	"playto.com/communityfeed/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hashed),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, author *model.User, content string) *model.Post {
	t.Helper()

	post := &model.Post{AuthorID: author.ID, Content: content}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	post.Author = *author
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, author *model.User, post *model.Post, parent *model.Comment, content string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		AuthorID: author.ID,
		PostID:   post.ID,
		Content:  content,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	comment.Author = *author
	return comment
}
