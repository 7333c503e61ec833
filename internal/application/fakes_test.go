package application

import (
	"sort"
	"strconv"
	"sync"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-app-api/internal/domain/repository"
)

// In-memory repositories mirroring the postgres contracts, including
// the descending-name list order.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	r.seq++
	u.ID = "user-" + strconv.Itoa(r.seq)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	byUser map[string]*entity.AuthToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byUser: map[string]*entity.AuthToken{}}
}

func (r *fakeTokenRepo) GetOrCreate(userID, key string) (*entity.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.byUser[userID]; ok {
		cp := *t
		return &cp, nil
	}
	t := &entity.AuthToken{Key: key, UserID: userID}
	r.byUser[userID] = t
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) GetByKey(key string) (*entity.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byUser {
		if t.Key == key {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeTokenRepo) DeleteForUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, userID)
	return nil
}

type fakeTagRepo struct {
	mu   sync.Mutex
	seq  int64
	tags []entity.Tag
}

func (r *fakeTagRepo) Create(t *entity.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = r.seq
	r.tags = append(r.tags, *t)
	return nil
}

func (r *fakeTagRepo) ListByUser(userID string) ([]entity.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Tag, 0)
	for _, t := range r.tags {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

type fakeIngredientRepo struct {
	mu   sync.Mutex
	seq  int64
	list []entity.Ingredient
}

func (r *fakeIngredientRepo) Create(i *entity.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	i.ID = r.seq
	r.list = append(r.list, *i)
	return nil
}

func (r *fakeIngredientRepo) ListByUser(userID string) ([]entity.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Ingredient, 0)
	for _, i := range r.list {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

var (
	_ repo.UserRepository       = (*fakeUserRepo)(nil)
	_ repo.TokenRepository      = (*fakeTokenRepo)(nil)
	_ repo.TagRepository        = (*fakeTagRepo)(nil)
	_ repo.IngredientRepository = (*fakeIngredientRepo)(nil)
)
