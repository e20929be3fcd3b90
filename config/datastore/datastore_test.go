package datastore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"menurecs/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataDir(t *testing.T, menu, recommendation string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "menu.csv"), []byte(menu), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "recommendation.csv"), []byte(recommendation), 0o644))
	return dir
}

const sampleMenu = `Item,Category,Item Description,Price
F001,Mains,Fried Rice,5.50
F002,Mains,Laksa,7.00
D001,Drinks,Iced Tea,2.20
`

const sampleRecommendation = `Customer,Rec1,Rec2,Rec3
42,F002,D001,F001
7,D001,F001,
`

func TestLoad(t *testing.T) {
	dir := writeDataDir(t, sampleMenu, sampleRecommendation)

	store, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, store.MenuSize())
	assert.Equal(t, 2, store.RecommendationCount())

	item, ok := store.MenuItem("F002")
	require.True(t, ok)
	assert.Equal(t, "Laksa", item.Description)
	assert.Equal(t, "Mains", item.Category)
	assert.InDelta(t, 7.00, item.Price, 1e-9)

	_, ok = store.MenuItem("missing")
	assert.False(t, ok)
}

func TestLoadKeepsMenuOrder(t *testing.T) {
	dir := writeDataDir(t, sampleMenu, sampleRecommendation)

	store, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"F001", "F002", "D001"}, store.ItemIDs())
}

func TestRecommendationsPerCustomer(t *testing.T) {
	dir := writeDataDir(t, sampleMenu, sampleRecommendation)

	store, err := Load(dir)
	require.NoError(t, err)

	recs, ok := store.Recommendations("42")
	require.True(t, ok)
	assert.Equal(t, []string{"F002", "D001", "F001"}, recs)

	// Trailing empty cells are not items.
	recs, ok = store.Recommendations("7")
	require.True(t, ok)
	assert.Equal(t, []string{"D001", "F001"}, recs)

	_, ok = store.Recommendations("999")
	assert.False(t, ok)
}

func TestLoadMissingMenuFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	require.Error(t, err)

	var customErr *utils.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, utils.KindStartupIO, customErr.Kind)
}

func TestLoadRejectsBadPrice(t *testing.T) {
	menu := "Item,Category,Item Description,Price\nF001,Mains,Fried Rice,cheap\n"
	dir := writeDataDir(t, menu, sampleRecommendation)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid price")
}

func TestLoadRejectsMissingColumn(t *testing.T) {
	menu := "Item,Category,Price\nF001,Mains,5.50\n"
	dir := writeDataDir(t, menu, sampleRecommendation)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Item Description")
}

func TestReadRunConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.txt"), []byte("3 2 15.50 42\n"), 0o644))

	config, err := ReadRunConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, config.OutputLength)
	assert.Equal(t, 2, config.NumPax)
	assert.InDelta(t, 15.50, config.SpendPerPax, 1e-9)
	assert.Equal(t, "42", config.CustomerID)
}

func TestReadRunConfigCustomerOptional(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.txt"), []byte("3 2 15.50\n"), 0o644))

	config, err := ReadRunConfig(dir)
	require.NoError(t, err)
	assert.Empty(t, config.CustomerID)
}

func TestReadRunConfigTooShort(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.txt"), []byte("3 2\n"), 0o644))

	_, err := ReadRunConfig(dir)
	assert.Error(t, err)
}

func TestReadCurrentOrder(t *testing.T) {
	dir := t.TempDir()
	current := "Item,Quantity\nF001,2\nD001,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "current.csv"), []byte(current), 0o644))

	order, err := ReadCurrentOrder(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"F001": 2, "D001": 1}, order)
}
