// Package catalog owns the content catalog: the ordered list of purchasable
// videos and their comment threads.  All catalog mutation goes through this
// store; records are flushed to the KV layer read-modify-write after every
// change and hydrated back at startup.
//
// The store does not enforce who may call its mutators.  Admin-only access
// is a property of the HTTP routing layer.
package catalog

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ppvstore/internal/model"
	"ppvstore/internal/storage"
)

// ErrEmptyComment is returned when a comment body is empty or whitespace
// only.  Handlers surface it as a user-facing prompt; the comment sequence
// is left unchanged.
var ErrEmptyComment = errors.New("comment text is empty")

// Fields carries the mutable attributes of a video for Create and Update.
// YouTubeRef accepts either a full URL or a bare 11-character identifier;
// unrecognized input is retained as-is (fallback policy).
type Fields struct {
	Title       string
	Description string
	YouTubeRef  string
	Thumbnail   string
	Price       float64
	Status      model.Status
}

// Store holds the catalog in memory and mirrors it to a KV layer.
type Store struct {
	mu       sync.Mutex
	kv       storage.KV
	delay    time.Duration
	items    []model.Video
	comments map[string][]model.Comment
	lastID   int64 // last millisecond used for an assigned ID
}

// New hydrates a Store from kv.  When no catalog record exists yet the
// store is seeded with the stock demo videos.  delay is the simulated
// network latency applied to the comment flow; it always runs to
// completion, there is no cancellation.
func New(kv storage.KV, delay time.Duration) (*Store, error) {
	s := &Store{
		kv:       kv,
		delay:    delay,
		comments: make(map[string][]model.Comment),
	}
	raw, err := kv.Get(storage.KeyCatalogItems)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.items); err != nil {
			return nil, err
		}
	case errors.Is(err, storage.ErrNotFound):
		s.items = seedVideos()
		if err := s.saveItems(); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return s, nil
}

// List returns the catalog in insertion order.
func (s *Store) List() []model.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Video, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the video with the given ID.
func (s *Store) Get(id string) (model.Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.items {
		if v.ID == id {
			return v, true
		}
	}
	return model.Video{}, false
}

// Create assigns a fresh identifier, zero-initializes the aggregate
// counters and appends the video to the end of the catalog.
func (s *Store) Create(f Fields) (model.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := model.Video{ID: s.nextID()}
	applyFields(&v, f)
	s.items = append(s.items, v)
	if err := s.saveItems(); err != nil {
		return model.Video{}, err
	}
	return v, nil
}

// Update replaces the mutable fields of an existing video.  The identifier
// and the aggregate counters are left untouched.  A missing ID is a silent
// no-op reported through the bool result.
func (s *Store) Update(id string, f Fields) (model.Video, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		applyFields(&s.items[i], f)
		if err := s.saveItems(); err != nil {
			return model.Video{}, false, err
		}
		return s.items[i], true, nil
	}
	return model.Video{}, false, nil
}

// Delete removes the video with the given ID along with its comment
// thread record.  Deleting a missing ID leaves the catalog unchanged.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := false
	for _, v := range s.items {
		if v.ID == id {
			removed = true
			continue
		}
		kept = append(kept, v)
	}
	s.items = kept
	if !removed {
		return nil
	}
	delete(s.comments, id)
	if err := s.kv.Delete(storage.CommentsKey(id)); err != nil {
		return err
	}
	return s.saveItems()
}

// AddComment prepends a comment to the video's thread so the newest comment
// comes first.  Blank text is rejected with ErrEmptyComment and the thread
// is left unchanged.  An empty author is recorded as anonymous.
func (s *Store) AddComment(videoID, author, text string) (model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, ErrEmptyComment
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if author == "" {
		author = model.AnonymousAuthor
	}
	c := model.Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	thread, err := s.loadComments(videoID)
	if err != nil {
		return model.Comment{}, err
	}
	thread = append([]model.Comment{c}, thread...)
	s.comments[videoID] = thread
	raw, err := json.Marshal(thread)
	if err != nil {
		return model.Comment{}, err
	}
	if err := s.kv.Put(storage.CommentsKey(videoID), raw); err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

// Comments returns the video's thread, most recent first.
func (s *Store) Comments(videoID string) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread, err := s.loadComments(videoID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Comment, len(thread))
	copy(out, thread)
	return out, nil
}

// nextID derives an identifier from the current millisecond, nudging
// forward when two creations land on the same tick.  Callers must hold mu.
func (s *Store) nextID() string {
	ms := time.Now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return "video-" + strconv.FormatInt(ms, 10)
}

// applyFields copies the mutable attributes onto v, resolving the external
// player reference and deriving a thumbnail when none was supplied.
func applyFields(v *model.Video, f Fields) {
	v.Title = f.Title
	v.Description = f.Description
	ref := strings.TrimSpace(f.YouTubeRef)
	if id, ok := ExtractVideoID(ref); ok {
		v.YouTubeID = id
	} else {
		v.YouTubeID = ref // keep the raw input when unrecognized
	}
	v.Thumbnail = f.Thumbnail
	if v.Thumbnail == "" && v.YouTubeID != "" {
		v.Thumbnail = ThumbnailURL(v.YouTubeID)
	}
	if f.Price < 0 {
		f.Price = 0
	}
	v.Price = f.Price
	if f.Status.Valid() {
		v.Status = f.Status
	} else if v.Status == "" {
		v.Status = model.StatusAvailable
	}
}

// loadComments returns the cached thread, falling back to the KV record.
// Callers must hold mu.
func (s *Store) loadComments(videoID string) ([]model.Comment, error) {
	if thread, ok := s.comments[videoID]; ok {
		return thread, nil
	}
	raw, err := s.kv.Get(storage.CommentsKey(videoID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var thread []model.Comment
	if err := json.Unmarshal(raw, &thread); err != nil {
		return nil, err
	}
	s.comments[videoID] = thread
	return thread, nil
}

// saveItems flushes the whole catalog sequence as one JSON record.
// Callers must hold mu.
func (s *Store) saveItems() error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.kv.Put(storage.KeyCatalogItems, raw)
}

// seedVideos returns the stock demo catalog used when the KV layer holds
// no catalog record yet.  The aggregate figures are static mock values.
func seedVideos() []model.Video {
	return []model.Video{
		{
			ID:          "1",
			Title:       "Live Concert: Summer Beats",
			Description: "Join us for an amazing live concert experience with top artists!",
			YouTubeID:   "dQw4w9WgXcQ",
			Thumbnail:   "https://via.placeholder.com/400x225/FF5722/FFFFFF?text=Live+Concert",
			Price:       9.99,
			Status:      model.StatusLive,
			Views:       1245,
			Purchases:   320,
			Revenue:     3196.8,
		},
		{
			ID:          "2",
			Title:       "Exclusive Interview: Behind the Scenes",
			Description: "Get an exclusive look behind the scenes with your favorite artists.",
			YouTubeID:   "dQw4w9WgXcQ",
			Thumbnail:   "https://via.placeholder.com/400x225/2196F3/FFFFFF?text=Exclusive+Interview",
			Price:       4.99,
			Status:      model.StatusAvailable,
			Views:       876,
			Purchases:   210,
			Revenue:     1047.9,
		},
		{
			ID:          "3",
			Title:       "Upcoming: Winter Festival 2023",
			Description: "Coming soon! The biggest winter festival of the year.",
			YouTubeID:   "dQw4w9WgXcQ",
			Thumbnail:   "https://via.placeholder.com/400x225/4CAF50/FFFFFF?text=Coming+Soon",
			Price:       14.99,
			Status:      model.StatusUpcoming,
		},
	}
}
