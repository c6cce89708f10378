package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"testing"
	"time"

	"menu_api/internal/model"
	"menu_api/internal/repository"
	"menu_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeItemRepo mimics the Mongo-backed repository contract, including the
// newest-first sort and the listing cap.
type fakeItemRepo struct {
	items []model.Item
}

func (f *fakeItemRepo) Create(_ context.Context, item *model.Item) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeItemRepo) FindAll(_ context.Context) ([]model.Item, error) {
	out := make([]model.Item, len(f.items))
	copy(out, f.items)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > repository.ItemListLimit {
		out = out[:repository.ItemListLimit]
	}
	return out, nil
}

func (f *fakeItemRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Item, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			it := f.items[i]
			return &it, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func newItemTestRouter(repo *fakeItemRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	NewItemHandler(service.NewItemService(repo)).RegisterItemRoutes(api)
	return router
}

func TestCreateItem_Defaults(t *testing.T) {
	router := newItemTestRouter(&fakeItemRepo{})

	w := postJSON(router, "/api/items", `{"name":"Tacos","description":"Corn tortilla","price":8.5}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var got model.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Tacos", got.Name)
	assert.Equal(t, "Corn tortilla", got.Description)
	assert.Equal(t, 8.5, got.Price)
	assert.Equal(t, model.DefaultItemCategory, got.Category)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
	assert.False(t, got.IsLarge)
	assert.False(t, got.ID.IsZero())
	assert.False(t, got.CreatedAt.IsZero())

	// A subsequent get-by-id returns the identical record
	read := doRequest(router, http.MethodGet, "/api/items/"+got.ID.Hex())
	require.Equal(t, http.StatusOK, read.Code)
	assert.JSONEq(t, w.Body.String(), read.Body.String())
}

func TestCreateItem_EchoesAllFields(t *testing.T) {
	router := newItemTestRouter(&fakeItemRepo{})

	body := `{
		"name":"Burrito",
		"description":"Flour tortilla",
		"price":11,
		"category":"Mains",
		"image":"burrito.png",
		"badge":"New",
		"badgeColor":"green",
		"isLarge":true,
		"tags":["spicy","popular"]
	}`
	w := postJSON(router, "/api/items", body)

	require.Equal(t, http.StatusCreated, w.Code)
	var got model.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Mains", got.Category)
	assert.Equal(t, "burrito.png", got.Image)
	assert.Equal(t, "New", got.Badge)
	assert.Equal(t, "green", got.BadgeColor)
	assert.True(t, got.IsLarge)
	assert.Equal(t, []string{"spicy", "popular"}, got.Tags)
}

func TestCreateItem_InvalidPayloads(t *testing.T) {
	repo := &fakeItemRepo{}
	router := newItemTestRouter(repo)

	cases := map[string]string{
		"missing name":        `{"description":"Corn tortilla","price":8.5}`,
		"missing description": `{"name":"Tacos","price":8.5}`,
		"missing price":       `{"name":"Tacos","description":"Corn tortilla"}`,
		"non-numeric price":   `{"name":"Tacos","description":"Corn tortilla","price":"8.5"}`,
		"malformed body":      `{"name":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, postJSON(router, "/api/items", body).Code)
		})
	}
	assert.Empty(t, repo.items, "no record should be persisted for rejected payloads")
}

func TestCreateItem_ZeroPriceAccepted(t *testing.T) {
	router := newItemTestRouter(&fakeItemRepo{})

	w := postJSON(router, "/api/items", `{"name":"Water","description":"Tap","price":0}`)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateItem_NonArrayTagsDiscarded(t *testing.T) {
	router := newItemTestRouter(&fakeItemRepo{})

	w := postJSON(router, "/api/items", `{"name":"Tacos","description":"Corn tortilla","price":8.5,"tags":"spicy"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var got model.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
}

func TestGetItems_NewestFirstAndCapped(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakeItemRepo{}
	for i := 0; i < repository.ItemListLimit+20; i++ {
		repo.items = append(repo.items, model.Item{
			ID:        primitive.NewObjectID(),
			Name:      fmt.Sprintf("Item %d", i),
			Price:     1,
			Tags:      []string{},
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
	}
	router := newItemTestRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/items")

	require.Equal(t, http.StatusOK, w.Code)
	var got []model.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, repository.ItemListLimit)
	assert.Equal(t, fmt.Sprintf("Item %d", repository.ItemListLimit+19), got[0].Name)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt), "items must be ordered newest first")
	}
}

func TestGetItems_Empty(t *testing.T) {
	router := newItemTestRouter(&fakeItemRepo{})

	w := doRequest(router, http.MethodGet, "/api/items")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetItemByID_InvalidID(t *testing.T) {
	router := newItemTestRouter(&fakeItemRepo{})

	w := doRequest(router, http.MethodGet, "/api/items/zzz")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetItemByID_NotFound(t *testing.T) {
	router := newItemTestRouter(&fakeItemRepo{})

	w := doRequest(router, http.MethodGet, "/api/items/"+primitive.NewObjectID().Hex())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteItem(t *testing.T) {
	router := newItemTestRouter(&fakeItemRepo{})

	created := postJSON(router, "/api/items", `{"name":"Tacos","description":"Corn tortilla","price":8.5}`)
	require.Equal(t, http.StatusCreated, created.Code)
	var item model.Item
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &item))

	w := doRequest(router, http.MethodDelete, "/api/items/"+item.ID.Hex())
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, item.ID.Hex(), body["deletedId"])
	assert.NotEmpty(t, body["message"])

	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/api/items/"+item.ID.Hex()).Code)
}

func TestDeleteItem_NotFound(t *testing.T) {
	router := newItemTestRouter(&fakeItemRepo{})

	w := doRequest(router, http.MethodDelete, "/api/items/"+primitive.NewObjectID().Hex())

	assert.Equal(t, http.StatusNotFound, w.Code)
}
