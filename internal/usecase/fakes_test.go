package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/apperr"
)

// fakeStore is the in-memory backend shared by the fake repositories. Its
// key-lock table mirrors the transaction-scoped key locks: a lock taken
// inside WithTx is held until the function returns, so concurrent
// transactions on the same key serialize exactly like they would against
// the real store.
type fakeStore struct {
	mu        sync.Mutex
	nextID    int64
	movies    map[int64]entity.Movie
	showtimes map[int64]entity.Showtime
	bookings  map[int64]entity.Booking
	dataCalls int

	locksMu sync.Mutex
	lockTab map[string]*sync.Mutex
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		movies:    make(map[int64]entity.Movie),
		showtimes: make(map[int64]entity.Showtime),
		bookings:  make(map[int64]entity.Booking),
		lockTab:   make(map[string]*sync.Mutex),
	}
}

func newFakeRepository(store *fakeStore) *repository.Repository {
	return &repository.Repository{
		Tx:       &fakeTxRunner{store: store},
		Movie:    &fakeMovieRepo{store: store},
		Showtime: &fakeShowtimeRepo{store: store},
		Booking:  &fakeBookingRepo{store: store},
	}
}

func (s *fakeStore) touch() {
	s.dataCalls++
}

func (s *fakeStore) dataCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataCalls
}

func (s *fakeStore) allocID() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) addMovie(movie entity.Movie) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	movie.ID = s.allocID()
	s.movies[movie.ID] = movie
	return movie.ID
}

func (s *fakeStore) addShowtime(showtime entity.Showtime) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	showtime.ID = s.allocID()
	s.showtimes[showtime.ID] = showtime
	return showtime.ID
}

func (s *fakeStore) addBooking(booking entity.Booking) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking.ID = s.allocID()
	s.bookings[booking.ID] = booking
	return booking.ID
}

func (s *fakeStore) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *fakeStore) showtimeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.showtimes)
}

func (s *fakeStore) acquire(ctx context.Context, key string) error {
	tx, _ := ctx.Value(fakeTxKey{}).(*fakeTx)
	if tx == nil {
		return errors.New("key lock requested outside a transaction")
	}

	s.locksMu.Lock()
	m, ok := s.lockTab[key]
	if !ok {
		m = &sync.Mutex{}
		s.lockTab[key] = m
	}
	s.locksMu.Unlock()

	m.Lock()
	tx.held = append(tx.held, m)
	return nil
}

// ------------- transaction runner -------------

type fakeTxKey struct{}

type fakeTx struct {
	held []*sync.Mutex
}

func (t *fakeTx) release() {
	for _, m := range t.held {
		m.Unlock()
	}
	t.held = nil
}

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, _ := ctx.Value(fakeTxKey{}).(*fakeTx); tx != nil {
		return fn(ctx)
	}

	tx := &fakeTx{}
	defer tx.release()
	return fn(context.WithValue(ctx, fakeTxKey{}, tx))
}

// ------------- movie repository -------------

type fakeMovieRepo struct {
	store *fakeStore
}

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	for _, m := range s.movies {
		if m.Title == movie.Title {
			return apperr.Conflictf("movie with title %q already exists", movie.Title)
		}
	}

	movie.ID = s.allocID()
	s.movies[movie.ID] = *movie
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	movie, ok := s.movies[id]
	if !ok {
		return nil, nil
	}
	return &movie, nil
}

func (r *fakeMovieRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Movie, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	var all []*entity.Movie
	for id := int64(1); id <= s.nextID; id++ {
		if movie, ok := s.movies[id]; ok {
			m := movie
			all = append(all, &m)
		}
	}

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeMovieRepo) CountAll(_ context.Context) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return int64(len(s.movies)), nil
}

func (r *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if _, ok := s.movies[movie.ID]; !ok {
		return apperr.NotFoundf("movie %d not found", movie.ID)
	}
	for id, m := range s.movies {
		if id != movie.ID && m.Title == movie.Title {
			return apperr.Conflictf("movie with title %q already exists", movie.Title)
		}
	}

	s.movies[movie.ID] = *movie
	return nil
}

func (r *fakeMovieRepo) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if _, ok := s.movies[id]; !ok {
		return apperr.NotFoundf("movie %d not found", id)
	}
	delete(s.movies, id)
	return nil
}

// ------------- showtime repository -------------

type fakeShowtimeRepo struct {
	store *fakeStore
}

func (r *fakeShowtimeRepo) LockTheater(ctx context.Context, theater string) error {
	return r.store.acquire(ctx, "theater:"+theater)
}

func (r *fakeShowtimeRepo) Create(_ context.Context, showtime *entity.Showtime) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if _, ok := s.movies[showtime.MovieID]; !ok {
		return apperr.NotFoundf("movie %d not found", showtime.MovieID)
	}

	showtime.ID = s.allocID()
	s.showtimes[showtime.ID] = *showtime
	return nil
}

func (r *fakeShowtimeRepo) FindByID(_ context.Context, id int64) (*entity.Showtime, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	showtime, ok := s.showtimes[id]
	if !ok {
		return nil, nil
	}
	return &showtime, nil
}

func (r *fakeShowtimeRepo) FindByTheater(_ context.Context, theater string, excludeID int64) ([]*entity.Showtime, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	var showtimes []*entity.Showtime
	for id := int64(1); id <= s.nextID; id++ {
		showtime, ok := s.showtimes[id]
		if !ok || showtime.Theater != theater || showtime.ID == excludeID {
			continue
		}
		st := showtime
		showtimes = append(showtimes, &st)
	}
	return showtimes, nil
}

func (r *fakeShowtimeRepo) Update(_ context.Context, showtime *entity.Showtime) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if _, ok := s.showtimes[showtime.ID]; !ok {
		return apperr.NotFoundf("showtime %d not found", showtime.ID)
	}
	if _, ok := s.movies[showtime.MovieID]; !ok {
		return apperr.NotFoundf("movie %d not found", showtime.MovieID)
	}

	s.showtimes[showtime.ID] = *showtime
	return nil
}

func (r *fakeShowtimeRepo) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if _, ok := s.showtimes[id]; !ok {
		return apperr.NotFoundf("showtime %d not found", id)
	}
	for _, booking := range s.bookings {
		if booking.ShowtimeID == id {
			return apperr.Conflictf("showtime %d has existing bookings", id)
		}
	}
	delete(s.showtimes, id)
	return nil
}

func (r *fakeShowtimeRepo) ExistsByMovieID(_ context.Context, movieID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	for _, showtime := range s.showtimes {
		if showtime.MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

// ------------- booking repository -------------

type fakeBookingRepo struct {
	store *fakeStore
}

func (r *fakeBookingRepo) LockSeat(ctx context.Context, showtimeID int64, seatNumber int) error {
	return r.store.acquire(ctx, fmt.Sprintf("booking:%d:%d", showtimeID, seatNumber))
}

func (r *fakeBookingRepo) FindByShowtimeAndSeat(_ context.Context, showtimeID int64, seatNumber int) (*entity.Booking, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	for _, booking := range s.bookings {
		if booking.ShowtimeID == showtimeID && booking.SeatNumber == seatNumber {
			b := booking
			return &b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	for _, b := range s.bookings {
		if b.ShowtimeID == booking.ShowtimeID && b.SeatNumber == booking.SeatNumber {
			return apperr.Conflictf("seat %d is already booked for showtime %d", booking.SeatNumber, booking.ShowtimeID)
		}
	}

	booking.ID = s.allocID()
	s.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) ExistsByShowtimeID(_ context.Context, showtimeID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	for _, booking := range s.bookings {
		if booking.ShowtimeID == showtimeID {
			return true, nil
		}
	}
	return false, nil
}
