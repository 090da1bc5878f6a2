package service

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/astatica/portfolio/database"
	"github.com/astatica/portfolio/database/model"
	"github.com/astatica/portfolio/logger"
	"github.com/astatica/portfolio/util/common"
	"github.com/astatica/portfolio/util/json_util"
	"github.com/astatica/portfolio/util/random"
	"github.com/astatica/portfolio/util/slug"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// Categories is the fixed vocabulary served to the admin UI. Work writes are
// not validated against it.
var Categories = []string{
	"3D",
	"VFX",
	"Direction",
	"Motion Graphics",
	"Color Grading",
	"Post Production",
	"2D",
	"Production",
	"Live Action",
	"Interactive",
}

// ErrInvalidCredits marks a credits payload that is not parsable JSON.
var ErrInvalidCredits = common.NewError("credits is not valid JSON")

// ParseCredits parses the wire representation of the credits field. An empty
// payload yields an empty list; a malformed one is a hard failure.
func ParseCredits(raw string) (json_util.RawMessage, error) {
	if strings.TrimSpace(raw) == "" {
		return json_util.EmptyList(), nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, ErrInvalidCredits
	}
	normalized, err := json.Marshal(parsed)
	if err != nil {
		return nil, ErrInvalidCredits
	}
	return json_util.RawMessage(normalized), nil
}

// ParseCategories splits a comma-delimited category string, trimming
// whitespace and dropping empty entries. Absence yields an empty list.
func ParseCategories(csv string) json_util.RawMessage {
	labels := make([]string, 0)
	for _, label := range strings.Split(csv, ",") {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}
	data, err := json.Marshal(labels)
	if err != nil {
		return json_util.EmptyList()
	}
	return json_util.RawMessage(data)
}

// WorkService provides portfolio work storage operations.
type WorkService struct{}

// GetWorks returns all works sorted by creation time descending.
func (s *WorkService) GetWorks() ([]*model.Work, error) {
	db := database.GetDB()
	var works []*model.Work
	err := db.Order("created_at desc").Find(&works).Error
	if err != nil {
		return nil, err
	}
	return works, nil
}

// GetWorkBySlug returns one work or gorm.ErrRecordNotFound.
func (s *WorkService) GetWorkBySlug(workSlug string) (*model.Work, error) {
	db := database.GetDB()
	var work model.Work
	err := db.Where("slug = ?", workSlug).First(&work).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

// CreateWork persists a new work. The slug is derived from the title; when
// the insert hits the unique slug index the create is retried with a
// timestamp suffix, then with a random suffix. The caller never picks the
// final slug.
func (s *WorkService) CreateWork(work *model.Work) error {
	db := database.GetDB()

	base := slug.Make(work.Title)
	if len(work.Categories) == 0 {
		work.Categories = json_util.EmptyList()
	}
	if len(work.Credits) == 0 {
		work.Credits = json_util.EmptyList()
	}
	work.CreatedAt = time.Now()

	candidates := []string{
		base,
		fmt.Sprintf("%s-%d", base, time.Now().UnixMilli()),
		fmt.Sprintf("%s-%s", base, random.LowerSeq(8)),
	}
	var err error
	for _, candidate := range candidates {
		work.Id = 0
		work.Slug = strings.Trim(candidate, "-")
		err = db.Create(work).Error
		if err == nil {
			return nil
		}
		if !isDuplicateSlug(err) {
			return err
		}
		logger.Debugf("slug %q taken, retrying", work.Slug)
	}
	return err
}

// DeleteWork removes a work by its storage id. Unknown ids yield
// gorm.ErrRecordNotFound.
func (s *WorkService) DeleteWork(id int) error {
	db := database.GetDB()
	result := db.Delete(&model.Work{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReferencedImages returns the set of upload file names referenced by any
// work's cover image. Used by the orphan sweep job.
func (s *WorkService) ReferencedImages() (map[string]bool, error) {
	db := database.GetDB()
	var covers []string
	err := db.Model(&model.Work{}).Pluck("cover_image", &covers).Error
	if err != nil {
		return nil, err
	}
	refs := make(map[string]bool, len(covers))
	for _, cover := range covers {
		if cover != "" {
			refs[path.Base(cover)] = true
		}
	}
	return refs, nil
}

func isDuplicateSlug(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
