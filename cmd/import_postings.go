package main

import (
	"context"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/maxaizer/intern-match/internal/repositories"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"strings"
)

type postingsFile struct {
	Internships []models.Posting `yaml:"internships"`
}

type postingStore interface {
	FindByTitleAndCompany(ctx context.Context, title, company string) ([]models.Posting, error)
	Add(ctx context.Context, posting *models.Posting) error
	Update(ctx context.Context, posting models.Posting) error
}

var importPostingsCmd = &cobra.Command{
	Use:   "import-postings <file.yaml>",
	Short: "Add or update catalog postings from a yaml file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		postings, err := readPostings(file)
		if err != nil {
			return err
		}

		dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
		if err != nil {
			return err
		}
		defer dbContext.Close()

		if err := dbContext.Migrate(); err != nil {
			return err
		}

		tx := repositories.NewTransactor(dbContext.DB)
		repo := repositories.NewPostingsRepository(dbContext.DB)

		var added, updated int
		err = tx.WithTx(cmd.Context(), func(ctx context.Context) error {
			added, updated, err = importPostings(ctx, repo, postings)
			return err
		})
		if err != nil {
			return err
		}

		log.Infof("postings imported: %d added, %d updated", added, updated)
		return nil
	},
}

func readPostings(r io.Reader) ([]models.Posting, error) {
	var file postingsFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decode postings file")
	}

	for i := range file.Internships {
		p := &file.Internships[i]
		p.Title = strings.TrimSpace(p.Title)
		p.Company = strings.TrimSpace(p.Company)
		if p.Title == "" || p.Company == "" {
			return nil, errors.Errorf("posting #%d: title and company are required", i+1)
		}
		p.Type = models.NormalizePostingType(string(p.Type))
	}
	return file.Internships, nil
}

// importPostings updates the posting with the same title and company, or
// adds a new one. Titles only containing the imported one do not count.
func importPostings(ctx context.Context, repo postingStore, postings []models.Posting) (added, updated int, err error) {
	for _, posting := range postings {
		existing, err := repo.FindByTitleAndCompany(ctx, posting.Title, posting.Company)
		if err != nil {
			return added, updated, err
		}

		if len(existing) > 0 && strings.EqualFold(strings.TrimSpace(existing[0].Title), posting.Title) {
			posting.ID = existing[0].ID
			if err := repo.Update(ctx, posting); err != nil {
				return added, updated, err
			}
			updated++
			continue
		}

		if err := repo.Add(ctx, &posting); err != nil {
			return added, updated, err
		}
		added++
	}
	return added, updated, nil
}
