package postgres

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/deps"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/entities"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new catalog repository backed by the posts full-text index
func NewPostRepository(db *gorm.DB) deps.PostRepository {
	return &postRepository{db: db}
}

// Search matches any query term against the caption index and orders by ts_rank
func (r *postRepository) Search(ctx context.Context, query string, limit int) ([]entities.Post, error) {
	tsQuery := buildTSQuery(query)
	if tsQuery == "" {
		return nil, nil
	}

	var posts []entities.Post
	err := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Select("posts.*, ts_rank(search_vector, to_tsquery('simple', ?)) AS score", tsQuery).
		Where("search_vector @@ to_tsquery('simple', ?)", tsQuery).
		Order("score DESC").
		Order("id").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return posts, nil
}

// Add stores a post and reports whether a new row was created
func (r *postRepository) Add(ctx context.Context, post *entities.Post) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "channel_id"}, {Name: "message_id"}},
			DoNothing: true,
		}).
		Create(post)
	if res.Error != nil {
		return false, fmt.Errorf("failed to add post %d: %w", post.MessageID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Count returns the catalog size
func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Post{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// buildTSQuery turns free text into an OR of prefix terms, e.g. "batman 1989" -> "batman:* | 1989:*".
// Anything that is not a letter or digit separates terms, so the result is always valid tsquery syntax.
// A word mixing letters and digits also contributes its runs, since the simple parser
// indexes "Batman (1989)" as "batman" and "1989": "batman1989" -> "batman1989:* | batman:* | 1989:*".
func buildTSQuery(query string) string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(words))
	terms := make([]string, 0, len(words))
	add := func(w string) {
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		terms = append(terms, w+":*")
	}

	for _, w := range words {
		add(w)
		if parts := splitLetterDigit(w); len(parts) > 1 {
			for _, part := range parts {
				add(part)
			}
		}
	}
	return strings.Join(terms, " | ")
}

// splitLetterDigit cuts a word where letters and digits meet: "x2y10" -> ["x", "2", "y", "10"]
func splitLetterDigit(word string) []string {
	var parts []string
	start := 0
	prevDigit := false
	for i, r := range word {
		digit := unicode.IsDigit(r)
		if i > 0 && digit != prevDigit {
			parts = append(parts, word[start:i])
			start = i
		}
		prevDigit = digit
	}
	return append(parts, word[start:])
}
