package seed

import (
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	))
	return db
}

func TestSeed(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 5, NumGroups: 2, NumPosts: 12}))

	var users, groups, posts, comments int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Group{}).Count(&groups).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)

	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(2), groups)
	assert.Equal(t, int64(12), posts)
	assert.Equal(t, int64(24), comments)

	// no self-follows in the generated mesh
	var selfFollows int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("user_id = author_id").Count(&selfFollows).Error)
	assert.Zero(t, selfFollows)
}

func TestSeed_CleanRemovesExistingData(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, db.Create(&models.User{Username: "leftover", Email: "l@example.com", Password: "pw"}).Error)

	require.NoError(t, Seed(db, Options{NumUsers: 2, NumGroups: 1, NumPosts: 3, ShouldClean: true}))

	var leftover int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "leftover").Count(&leftover).Error)
	assert.Zero(t, leftover)
}

func TestFactory_CreateFollowIsUnique(t *testing.T) {
	db := setupSeedTestDB(t)
	f := NewFactory(db)

	a, err := f.CreateUser()
	require.NoError(t, err)
	b, err := f.CreateUser()
	require.NoError(t, err)

	_, err = f.CreateFollow(a, b)
	require.NoError(t, err)
	_, err = f.CreateFollow(a, b)
	assert.Error(t, err, "the unique index rejects a duplicate edge")
}
