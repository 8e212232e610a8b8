package seed

import (
	"fmt"
	"log"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with a believable social mesh.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Table order follows foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"reactions", "comments", "posts", "follows", "users"} {
		if err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds users, a follow mesh, posts, comments and reactions, then
// recomputes the derived follower/following counters in a single pass.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users", len(users))

	if err := s.createFollowMesh(users); err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	if err := s.createEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	if err := s.recountFollowCounters(); err != nil {
		return fmt.Errorf("failed to recount follow counters: %w", err)
	}

	log.Println("Seeding completed")
	return nil
}

func (s *Seeder) createUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// A few fixed accounts for predictable local logins.
	for _, name := range []string{"alice", "bob", "test"} {
		if len(users) >= count {
			break
		}
		name := name
		user, err := s.factory.CreateUser(func(u *models.User) {
			u.Username = name
			u.Email = fmt.Sprintf("%s@example.com", name)
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			// Username collisions are rare but possible with generated names.
			log.Printf("skipping user: %v", err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// createFollowMesh gives every user a random set of accounts to follow so
// personal feeds have content.
func (s *Seeder) createFollowMesh(users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	for _, follower := range users {
		count := s.factory.rng.Intn(len(users)/2 + 1)
		for _, j := range s.factory.rng.Perm(len(users)) {
			if count == 0 {
				break
			}
			followee := users[j]
			if followee.ID == follower.ID {
				continue
			}
			if err := s.factory.CreateFollow(follower, followee); err != nil {
				return err
			}
			count--
		}
	}
	return nil
}

func (s *Seeder) createPosts(users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createEngagement adds comments and reactions to a random subset of posts.
// Reactors are drawn without replacement so the (post, user) unique index
// holds.
func (s *Seeder) createEngagement(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for i, n := 0, s.factory.rng.Intn(4); i < n; i++ {
			commenter := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return err
			}
		}

		reactors := s.factory.rng.Perm(len(users))
		n := s.factory.rng.Intn(6)
		if n > len(reactors) {
			n = len(reactors)
		}
		for _, j := range reactors[:n] {
			if err := s.factory.CreateReaction(users[j], post); err != nil {
				return err
			}
		}
	}
	return nil
}

// recountFollowCounters derives followers_count and following_count from the
// follows table, matching what the repository does on each edge mutation.
func (s *Seeder) recountFollowCounters() error {
	return s.db.Exec(
		`UPDATE users SET ` +
			`followers_count = (SELECT COUNT(*) FROM follows WHERE follows.followee_id = users.id), ` +
			`following_count = (SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id)`,
	).Error
}
