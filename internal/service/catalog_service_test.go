package service

import (
	"context"
	"testing"

	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) *CatalogService {
	// nil redis: the catalog must work uncached.
	return NewCatalogService(repository.NewActivityRepository(db), nil)
}

func TestListActivitiesOnlyPublished(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	seedActivity(t, db, "Live One", 1.0, 70, 2)
	draft := seedActivity(t, db, "Still Draft", 1.0, 70, 2)
	require.NoError(t, db.Model(draft).Update("status", model.ActivityReview).Error)
	retired := seedActivity(t, db, "Gone", 1.0, 70, 2)
	require.NoError(t, db.Model(retired).Update("status", model.ActivityRetired).Error)

	activities, total, err := svc.ListActivities(context.Background(), "", "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, activities, 1)
	assert.Equal(t, "Live One", activities[0].Title)
}

func TestListActivitiesSpecialtyFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	seedActivity(t, db, "IM Course", 1.0, 70, 2)
	fm := seedActivity(t, db, "FM Course", 1.0, 70, 2)
	require.NoError(t, db.Model(fm).Update("specialty", "Family Medicine").Error)
	tagged := seedActivity(t, db, "Cross-listed", 1.0, 70, 2)
	require.NoError(t, db.Model(tagged).Updates(map[string]interface{}{
		"specialty":       "Emergency Medicine",
		"target_audience": "Family Medicine, Pediatrics",
	}).Error)

	activities, total, err := svc.ListActivities(context.Background(), "family medicine", "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total, "audience tags count toward the specialty match")

	titles := make([]string, 0, len(activities))
	for _, a := range activities {
		titles = append(titles, a.Title)
	}
	assert.ElementsMatch(t, []string{"FM Course", "Cross-listed"}, titles)
}

func TestListActivitiesCreditTypeFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	seedActivity(t, db, "Clinical", 1.0, 70, 2)
	ethics := seedActivity(t, db, "Ethics", 1.0, 70, 2)
	require.NoError(t, db.Model(ethics).Update("credit_type", model.CreditEthics).Error)

	activities, total, err := svc.ListActivities(context.Background(), "", string(model.CreditEthics), 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, activities, 1)
	assert.Equal(t, "Ethics", activities[0].Title)
}

func TestListActivitiesStableOrderAndPaging(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	for _, title := range []string{"First", "Second", "Third"} {
		seedActivity(t, db, title, 1.0, 70, 2)
	}

	page1, total, err := svc.ListActivities(context.Background(), "", "", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page1, 2)
	assert.Equal(t, "First", page1[0].Title)
	assert.Equal(t, "Second", page1[1].Title)

	page2, _, err := svc.ListActivities(context.Background(), "", "", 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "Third", page2[0].Title)
}

func TestListActivitiesClampsBadPaging(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	seedActivity(t, db, "Only One", 1.0, 70, 2)

	activities, total, err := svc.ListActivities(context.Background(), "", "", -3, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, activities, 1)
}
