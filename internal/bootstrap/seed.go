package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"playto.com/communityfeed/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.CommentLike{},
		&model.KarmaEvent{},
	)
}

// SeedSampleData creates a few demo users and posts for development
// environments. It is a no-op when users already exist.
func SeedSampleData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Users already exist, skipping sample data seed")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	usernames := []string{"alice", "bob", "carol"}
	users := make([]*model.User, 0, len(usernames))
	for _, username := range usernames {
		user := &model.User{
			Username:     username,
			Email:        username + "@example.com",
			PasswordHash: string(hashedPassword),
		}
		if err := db.Create(user).Error; err != nil {
			return err
		}
		users = append(users, user)
	}

	posts := []model.Post{
		{AuthorID: users[0].ID, Content: "Hello from the community feed!"},
		{AuthorID: users[1].ID, Content: "First post, be gentle."},
	}
	for i := range posts {
		if err := db.Create(&posts[i]).Error; err != nil {
			return err
		}
	}

	comment := model.Comment{
		AuthorID: users[2].ID,
		PostID:   posts[0].ID,
		Content:  "Welcome aboard!",
	}
	if err := db.Create(&comment).Error; err != nil {
		return err
	}

	log.Println("✅ Sample data seeded successfully")
	log.Println("   Users: alice, bob, carol (password: pass1234)")

	return nil
}
