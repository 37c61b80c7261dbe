package repositories

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

type Postings struct {
	db *gorm.DB
}

func NewPostingsRepository(db *gorm.DB) *Postings {
	return &Postings{db: db}
}

// GetAll returns the whole catalog in ascending id order. Reconciliation
// tie-breaks rely on this order being stable between calls.
func (repo *Postings) GetAll(ctx context.Context) ([]models.Posting, error) {
	var postings []models.Posting
	if err := conn(ctx, repo.db).Order("id asc").Find(&postings).Error; err != nil {
		return nil, errors.Wrap(err, "query postings")
	}
	return postings, nil
}

func (repo *Postings) GetByID(ctx context.Context, id uint) (*models.Posting, error) {
	var posting models.Posting
	if err := conn(ctx, repo.db).First(&posting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "posting %d", id)
		}
		return nil, errors.Wrapf(err, "query posting %d", id)
	}
	return &posting, nil
}

// FindByTitleAndCompany is the storage-side form of the reconciliation rule:
// company equal ignoring case and surrounding spaces, title containing the
// given text. Exact title matches sort first.
func (repo *Postings) FindByTitleAndCompany(ctx context.Context, title, company string) ([]models.Posting, error) {
	var postings []models.Posting
	err := conn(ctx, repo.db).
		Where("LOWER(TRIM(company)) = LOWER(TRIM(?))", company).
		Where("INSTR(LOWER(TRIM(title)), LOWER(TRIM(?))) > 0", title).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN LOWER(TRIM(title)) = LOWER(TRIM(?)) THEN 0 ELSE 1 END, id asc",
			Vars:               []any{title},
			WithoutParentheses: true,
		}}).
		Find(&postings).Error
	if err != nil {
		return nil, errors.Wrap(err, "query postings by title and company")
	}
	return postings, nil
}

func (repo *Postings) Add(ctx context.Context, posting *models.Posting) error {
	posting.ID = 0
	return errors.Wrap(conn(ctx, repo.db).Create(posting).Error, "create posting")
}

func (repo *Postings) Update(ctx context.Context, posting models.Posting) error {
	res := conn(ctx, repo.db).Model(&models.Posting{}).Where("id = ?", posting.ID).
		Select("title", "company", "location", "stipend", "field", "duration", "skills", "type", "description", "updated_at").
		Updates(posting)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update posting %d", posting.ID)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "posting %d", posting.ID)
	}
	return nil
}

func (repo *Postings) Remove(ctx context.Context, id uint) error {
	res := conn(ctx, repo.db).Delete(&models.Posting{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete posting %d", id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "posting %d", id)
	}
	return nil
}
