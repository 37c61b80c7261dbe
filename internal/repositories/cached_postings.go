package repositories

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
	"strconv"
	"time"
)

const allPostingsKey = "postings:all"

type postingRepository interface {
	GetAll(ctx context.Context) ([]models.Posting, error)
	GetByID(ctx context.Context, id uint) (*models.Posting, error)
	Add(ctx context.Context, posting *models.Posting) error
	Update(ctx context.Context, posting models.Posting) error
	Remove(ctx context.Context, id uint) error
}

// CachedPostings is a read-through cache over the catalog. Writes made through
// it flush the cache; writes made elsewhere become visible after ttl.
type CachedPostings struct {
	repo  postingRepository
	cache *gocache.Cache
}

func NewCachedPostings(repo postingRepository, ttl time.Duration) *CachedPostings {
	return &CachedPostings{repo: repo, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedPostings) GetAll(ctx context.Context) ([]models.Posting, error) {
	if value, found := c.cache.Get(allPostingsKey); found {
		return clonePostings(value.([]models.Posting)), nil
	}

	postings, err := c.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(allPostingsKey, clonePostings(postings))
	return postings, nil
}

func (c *CachedPostings) GetByID(ctx context.Context, id uint) (*models.Posting, error) {
	key := postingKey(id)
	if value, found := c.cache.Get(key); found {
		posting := value.(models.Posting)
		return &posting, nil
	}

	posting, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, *posting)
	return posting, nil
}

func (c *CachedPostings) Add(ctx context.Context, posting *models.Posting) error {
	defer c.cache.Flush()
	return c.repo.Add(ctx, posting)
}

func (c *CachedPostings) Update(ctx context.Context, posting models.Posting) error {
	defer c.cache.Flush()
	return c.repo.Update(ctx, posting)
}

func (c *CachedPostings) Remove(ctx context.Context, id uint) error {
	defer c.cache.Flush()
	return c.repo.Remove(ctx, id)
}

func postingKey(id uint) string {
	return "postings:" + strconv.FormatUint(uint64(id), 10)
}

func clonePostings(postings []models.Posting) []models.Posting {
	return append([]models.Posting(nil), postings...)
}
