package store

import (
	"sort"
	"sync"
	"time"

	"github.com/mkvist/shelfmark/internal/models"
)

// memStore is the in-memory backend. Each collection is a map guarded by
// one mutex, with its own monotonic id sequence. The store is constructed
// per process (or per test) and injected; there is no package-level state.
type memStore struct {
	mu      sync.Mutex
	users   map[uint64]models.User
	works   map[uint64]models.Work
	ratings map[uint64]models.Rating
	shelves map[uint64]models.Shelf
	seq     map[string]uint64
}

// NewMemory creates an empty in-memory store.
func NewMemory() Store {
	return &memStore{
		users:   make(map[uint64]models.User),
		works:   make(map[uint64]models.Work),
		ratings: make(map[uint64]models.Rating),
		shelves: make(map[uint64]models.Shelf),
		seq:     make(map[string]uint64),
	}
}

func (s *memStore) Users() UserRepo     { return memUsers{s} }
func (s *memStore) Works() WorkRepo     { return memWorks{s} }
func (s *memStore) Ratings() RatingRepo { return memRatings{s} }
func (s *memStore) Shelves() ShelfRepo  { return memShelves{s} }

func (s *memStore) Ping() error  { return nil }
func (s *memStore) Close() error { return nil }

// nextID allocates the next id for a collection. Caller holds the lock.
func (s *memStore) nextID(collection string) uint64 {
	s.seq[collection]++
	return s.seq[collection]
}

type memUsers struct{ s *memStore }

func (r memUsers) ByID(id uint64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r memUsers) ByUsername(username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r memUsers) ByEmail(email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r memUsers) All() ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

func (r memUsers) Create(u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.UserID = r.s.nextID("users")
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.UserID] = *u
	return nil
}

func (r memUsers) Save(u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.UserID]; !ok {
		return ErrNotFound
	}
	u.UpdatedAt = time.Now()
	r.s.users[u.UserID] = *u
	return nil
}

func (r memUsers) Delete(id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

type memWorks struct{ s *memStore }

func (r memWorks) ByID(id uint64) (*models.Work, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.works[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (r memWorks) All() ([]models.Work, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	works := make([]models.Work, 0, len(r.s.works))
	for _, w := range r.s.works {
		works = append(works, w)
	}
	sort.Slice(works, func(i, j int) bool { return works[i].WorkID < works[j].WorkID })
	return works, nil
}

func (r memWorks) Create(w *models.Work) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w.WorkID = r.s.nextID("works")
	now := time.Now()
	w.CreatedAt, w.UpdatedAt = now, now
	r.s.works[w.WorkID] = *w
	return nil
}

func (r memWorks) Save(w *models.Work) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.works[w.WorkID]; !ok {
		return ErrNotFound
	}
	w.UpdatedAt = time.Now()
	r.s.works[w.WorkID] = *w
	return nil
}

func (r memWorks) Delete(id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.works[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.works, id)
	return nil
}

type memRatings struct{ s *memStore }

func (r memRatings) ByID(id uint64) (*models.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rating, ok := r.s.ratings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rating, nil
}

func (r memRatings) ByUserAndWork(userID, workID uint64) (*models.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rating := range r.s.ratings {
		if rating.UserID == userID && rating.WorkID == workID {
			rating := rating
			return &rating, nil
		}
	}
	return nil, ErrNotFound
}

func (r memRatings) ByUser(userID uint64) ([]models.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ratings []models.Rating
	for _, rating := range r.s.ratings {
		if rating.UserID == userID {
			ratings = append(ratings, rating)
		}
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].RatingID < ratings[j].RatingID })
	return ratings, nil
}

func (r memRatings) ByWork(workID uint64) ([]models.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ratings []models.Rating
	for _, rating := range r.s.ratings {
		if rating.WorkID == workID {
			ratings = append(ratings, rating)
		}
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].RatingID < ratings[j].RatingID })
	return ratings, nil
}

func (r memRatings) Create(rating *models.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rating.RatingID = r.s.nextID("ratings")
	r.s.ratings[rating.RatingID] = *rating
	return nil
}

func (r memRatings) Save(rating *models.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ratings[rating.RatingID]; !ok {
		return ErrNotFound
	}
	r.s.ratings[rating.RatingID] = *rating
	return nil
}

func (r memRatings) Delete(id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.ratings[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.ratings, id)
	return nil
}

func (r memRatings) DeleteByUser(userID uint64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var removed int64
	for id, rating := range r.s.ratings {
		if rating.UserID == userID {
			delete(r.s.ratings, id)
			removed++
		}
	}
	return removed, nil
}

type memShelves struct{ s *memStore }

func (r memShelves) ByID(id uint64) (*models.Shelf, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shelf, ok := r.s.shelves[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &shelf, nil
}

func (r memShelves) ByUser(userID uint64) ([]models.Shelf, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var shelves []models.Shelf
	for _, shelf := range r.s.shelves {
		if shelf.UserID == userID {
			shelves = append(shelves, shelf)
		}
	}
	sort.Slice(shelves, func(i, j int) bool { return shelves[i].ShelfID < shelves[j].ShelfID })
	return shelves, nil
}

func (r memShelves) ByUserAndName(userID uint64, name string) (*models.Shelf, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, shelf := range r.s.shelves {
		if shelf.UserID == userID && shelf.Name == name {
			shelf := shelf
			return &shelf, nil
		}
	}
	return nil, ErrNotFound
}

func (r memShelves) Create(shelf *models.Shelf) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shelf.ShelfID = r.s.nextID("shelves")
	now := time.Now()
	shelf.CreatedAt, shelf.UpdatedAt = now, now
	r.s.shelves[shelf.ShelfID] = *shelf
	return nil
}

func (r memShelves) Save(shelf *models.Shelf) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shelves[shelf.ShelfID]; !ok {
		return ErrNotFound
	}
	shelf.UpdatedAt = time.Now()
	r.s.shelves[shelf.ShelfID] = *shelf
	return nil
}

func (r memShelves) Delete(id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shelves[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.shelves, id)
	return nil
}

func (r memShelves) DeleteByUser(userID uint64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var removed int64
	for id, shelf := range r.s.shelves {
		if shelf.UserID == userID {
			delete(r.s.shelves, id)
			removed++
		}
	}
	return removed, nil
}
