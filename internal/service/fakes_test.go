package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/queue"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
)

// =============================================================================
// IN-MEMORY STORE
// =============================================================================
//
// memStore backs every repository interface with maps so behavioural tests
// can run the services end to end. The like set enforces (user, type, target)
// uniqueness the way the database constraint does.

type memStore struct {
	mu    sync.Mutex
	clock time.Time

	users    map[uuid.UUID]*model.User
	genres   map[uuid.UUID]*model.Genre
	contents map[uuid.UUID]*model.Content
	comments map[uuid.UUID]*model.Comment
	likes    []model.Like
	shares   []model.Share
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[uuid.UUID]*model.User{},
		genres:   map[uuid.UUID]*model.Genre{},
		contents: map[uuid.UUID]*model.Content{},
		comments: map[uuid.UUID]*model.Comment{},
	}
}

// tick returns a strictly increasing timestamp. Callers hold mu.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) addUser(name string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.users[id] = &model.User{ID: id, FullName: name, Email: strings.ToLower(name) + "@example.com", Role: model.RoleUser, CreatedAt: s.tick()}
	return id
}

func (s *memStore) addGenre(name string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.genres[id] = &model.Genre{ID: id, Name: name, Slug: model.Slugify(name), IsActive: true, CreatedAt: s.tick()}
	return id
}

func (s *memStore) addContent(userID, genreID uuid.UUID, title string, tags ...string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.contents[id] = &model.Content{
		ID: id, UserID: userID, GenreID: genreID, Title: title, Tags: tags,
		MediaURL: "https://cdn.example.com/" + id.String(), MediaKey: "uploads/" + id.String(),
		IsPublic: true, CreatedAt: s.tick(),
	}
	return id
}

func (s *memStore) likeCount(t model.Target) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.likes {
		if l.TargetType == t.Type && l.TargetID == t.ID {
			n++
		}
	}
	return n
}

func (s *memStore) summary(id uuid.UUID) *model.UserSummary {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	sum := u.Summary()
	return &sum
}

func paginate[T any](items []T, p model.PageRequest) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(q repository.Querier) error) error {
	f.calls++
	return fn(nil)
}

// -----------------------------------------------------------------------------
// users

type memUsers struct{ *memStore }

func (r memUsers) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return model.ErrEmailExists
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = r.tick()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r memUsers) List(ctx context.Context, p model.PageRequest) ([]model.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.User
	for _, u := range r.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, p), int64(len(all)), nil
}

func (r memUsers) Update(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r memUsers) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r memUsers) SetRole(ctx context.Context, email string, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u.Role = role
			return nil
		}
	}
	return model.ErrUserNotFound
}

// -----------------------------------------------------------------------------
// genres

type memGenres struct{ *memStore }

func (r memGenres) Create(ctx context.Context, g *model.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.genres {
		if strings.EqualFold(existing.Name, g.Name) || existing.Slug == g.Slug {
			return model.ErrGenreExists
		}
	}
	g.ID = uuid.New()
	g.CreatedAt = r.tick()
	g.UpdatedAt = g.CreatedAt
	cp := *g
	r.genres[g.ID] = &cp
	return nil
}

func (r memGenres) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.genres[id]
	if !ok {
		return nil, model.ErrGenreNotFound
	}
	cp := *g
	return &cp, nil
}

func (r memGenres) GetBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.genres {
		if g.Slug == slug && g.IsActive {
			cp := *g
			return &cp, nil
		}
	}
	return nil, model.ErrGenreNotFound
}

func (r memGenres) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Genre{}
	for _, id := range ids {
		if g, ok := r.genres[id]; ok {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r memGenres) sorted(keep func(*model.Genre) bool) []model.Genre {
	var out []model.Genre
	for _, g := range r.genres {
		if keep(g) {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r memGenres) List(ctx context.Context, activeOnly bool, p model.PageRequest) ([]model.Genre, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(func(g *model.Genre) bool { return !activeOnly || g.IsActive })
	return paginate(all, p), int64(len(all)), nil
}

func (r memGenres) ListActive(ctx context.Context) ([]model.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(g *model.Genre) bool { return g.IsActive }), nil
}

func (r memGenres) Search(ctx context.Context, q string, p model.PageRequest) ([]model.Genre, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q = strings.ToLower(q)
	all := r.sorted(func(g *model.Genre) bool {
		return g.IsActive && (strings.Contains(strings.ToLower(g.Name), q) || strings.Contains(strings.ToLower(g.Description), q))
	})
	return paginate(all, p), int64(len(all)), nil
}

func (r memGenres) Popular(ctx context.Context, limit int) ([]model.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[uuid.UUID]int{}
	for _, c := range r.contents {
		counts[c.GenreID]++
	}
	all := r.sorted(func(g *model.Genre) bool { return g.IsActive })
	sort.SliceStable(all, func(i, j int) bool { return counts[all[i].ID] > counts[all[j].ID] })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r memGenres) Update(ctx context.Context, g *model.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.genres[g.ID]; !ok {
		return model.ErrGenreNotFound
	}
	for id, existing := range r.genres {
		if id != g.ID && existing.Slug == g.Slug {
			return model.ErrGenreExists
		}
	}
	cp := *g
	r.genres[g.ID] = &cp
	return nil
}

func (r memGenres) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.genres[id]
	if !ok {
		return model.ErrGenreNotFound
	}
	g.IsActive = false
	return nil
}

func (r memGenres) HardDelete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.genres[id]; !ok {
		return model.ErrGenreNotFound
	}
	delete(r.genres, id)
	return nil
}

func (r memGenres) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.genres[id]
	return ok, nil
}

func (r memGenres) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.genres {
		if strings.EqualFold(g.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// -----------------------------------------------------------------------------
// contents

type memContents struct{ *memStore }

func (r memContents) joined(c *model.Content) model.Content {
	cp := *c
	cp.Tags = append([]string(nil), c.Tags...)
	cp.Author = r.summary(c.UserID)
	if g, ok := r.genres[c.GenreID]; ok {
		cp.Genre = &model.GenreSummary{ID: g.ID, Name: g.Name, Slug: g.Slug}
	}
	cp.ApplyDefaults()
	return cp
}

func (r memContents) Create(ctx context.Context, c *model.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = r.tick()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.contents[c.ID] = &cp
	return nil
}

func (r memContents) GetByID(ctx context.Context, id uuid.UUID) (*model.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contents[id]
	if !ok {
		return nil, model.ErrContentNotFound
	}
	j := r.joined(c)
	return &j, nil
}

func (r memContents) List(ctx context.Context, f model.ContentFilter, p model.PageRequest) ([]model.Content, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(f.Query)
	var all []model.Content
	for _, c := range r.contents {
		if f.GenreID != nil && c.GenreID != *f.GenreID {
			continue
		}
		if f.UserID != nil && c.UserID != *f.UserID {
			continue
		}
		if q != "" && !contentMatches(c, q) {
			continue
		}
		all = append(all, r.joined(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, p), int64(len(all)), nil
}

func contentMatches(c *model.Content, q string) bool {
	if strings.Contains(strings.ToLower(c.Title), q) || strings.Contains(strings.ToLower(c.Description), q) {
		return true
	}
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func (r memContents) Update(ctx context.Context, c *model.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.contents[c.ID]
	if !ok || existing.UserID != c.UserID {
		return model.ErrContentNotFound
	}
	cp := *c
	cp.Author, cp.Genre = nil, nil
	cp.UpdatedAt = r.tick()
	r.contents[c.ID] = &cp
	return nil
}

func (r memContents) Delete(ctx context.Context, id, userID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contents[id]
	if !ok || c.UserID != userID {
		return nil, model.ErrContentNotFound
	}
	delete(r.contents, id)
	keys := []string{c.MediaKey}
	if c.ThumbnailKey != "" {
		keys = append(keys, c.ThumbnailKey)
	}
	return keys, nil
}

func (r memContents) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.contents[id]
	return ok, nil
}

func (r memContents) IncrementViews(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contents[id]
	if !ok {
		return model.ErrContentNotFound
	}
	c.Views++
	return nil
}

func (r memContents) AdjustLikes(ctx context.Context, q repository.Querier, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contents[id]
	if !ok {
		return model.ErrContentNotFound
	}
	c.Likes += int64(delta)
	return nil
}

func (r memContents) AdjustShares(ctx context.Context, q repository.Querier, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contents[id]
	if !ok {
		return model.ErrContentNotFound
	}
	c.Shares += int64(delta)
	return nil
}

// -----------------------------------------------------------------------------
// comments

type memComments struct{ *memStore }

func (r memComments) joined(c *model.Comment) model.Comment {
	cp := *c
	cp.ReplyIDs = append([]uuid.UUID{}, c.ReplyIDs...)
	cp.Author = r.summary(c.UserID)
	return cp
}

func (r memComments) Create(ctx context.Context, q repository.Querier, c *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = r.tick()
	c.UpdatedAt = c.CreatedAt
	c.ReplyIDs = []uuid.UUID{}
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r memComments) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	j := r.joined(c)
	return &j, nil
}

func (r memComments) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Comment{}
	for _, id := range ids {
		if c, ok := r.comments[id]; ok {
			out = append(out, r.joined(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memComments) list(keep func(*model.Comment) bool, p model.PageRequest) ([]model.Comment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.Comment
	for _, c := range r.comments {
		if keep(c) {
			all = append(all, r.joined(c))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, p), int64(len(all)), nil
}

func (r memComments) ListByContent(ctx context.Context, contentID uuid.UUID, p model.PageRequest) ([]model.Comment, int64, error) {
	return r.list(func(c *model.Comment) bool { return c.ContentID == contentID }, p)
}

func (r memComments) ListReplies(ctx context.Context, parentID uuid.UUID, p model.PageRequest) ([]model.Comment, int64, error) {
	return r.list(func(c *model.Comment) bool { return c.ParentComment != nil && *c.ParentComment == parentID }, p)
}

func (r memComments) ListByUser(ctx context.Context, userID uuid.UUID, p model.PageRequest) ([]model.Comment, int64, error) {
	return r.list(func(c *model.Comment) bool { return c.UserID == userID }, p)
}

func (r memComments) UpdateText(ctx context.Context, id, userID uuid.UUID, text string) (*model.Comment, error) {
	r.mu.Lock()
	c, ok := r.comments[id]
	if !ok || c.UserID != userID {
		r.mu.Unlock()
		return nil, model.ErrCommentNotFound
	}
	c.Text = text
	c.IsEdited = true
	r.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r memComments) AppendReply(ctx context.Context, q repository.Querier, parentID, replyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.comments[parentID]
	if !ok {
		return model.ErrCommentNotFound
	}
	p.ReplyIDs = append(p.ReplyIDs, replyID)
	return nil
}

func (r memComments) RemoveReply(ctx context.Context, q repository.Querier, parentID, replyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.comments[parentID]
	if !ok {
		return model.ErrCommentNotFound
	}
	kept := p.ReplyIDs[:0]
	for _, id := range p.ReplyIDs {
		if id != replyID {
			kept = append(kept, id)
		}
	}
	p.ReplyIDs = kept
	return nil
}

func (r memComments) Tombstone(ctx context.Context, q repository.Querier, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return model.ErrCommentNotFound
	}
	c.Text = model.DeletedCommentText
	c.IsEdited = true
	return nil
}

func (r memComments) Delete(ctx context.Context, q repository.Querier, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return model.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r memComments) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.comments[id]
	return ok, nil
}

func (r memComments) CountByContents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]int64, len(ids))
	for _, id := range ids {
		out[id] = 0
	}
	for _, c := range r.comments {
		if _, ok := out[c.ContentID]; ok {
			out[c.ContentID]++
		}
	}
	return out, nil
}

func (r memComments) AdjustLikes(ctx context.Context, q repository.Querier, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return model.ErrCommentNotFound
	}
	c.Likes += int64(delta)
	return nil
}

// -----------------------------------------------------------------------------
// likes

type memLikes struct{ *memStore }

func (r memLikes) indexOf(userID uuid.UUID, t model.Target) int {
	for i, l := range r.likes {
		if l.UserID == userID && l.TargetType == t.Type && l.TargetID == t.ID {
			return i
		}
	}
	return -1
}

func (r memLikes) Insert(ctx context.Context, q repository.Querier, userID uuid.UUID, t model.Target) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(userID, t) >= 0 {
		return model.ErrAlreadyLiked
	}
	r.likes = append(r.likes, model.Like{ID: uuid.New(), UserID: userID, TargetType: t.Type, TargetID: t.ID, CreatedAt: r.tick()})
	return nil
}

func (r memLikes) Delete(ctx context.Context, q repository.Querier, userID uuid.UUID, t model.Target) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(userID, t)
	if i < 0 {
		return false, nil
	}
	r.likes = append(r.likes[:i], r.likes[i+1:]...)
	return true, nil
}

func (r memLikes) Exists(ctx context.Context, userID uuid.UUID, t model.Target) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexOf(userID, t) >= 0, nil
}

func (r memLikes) Count(ctx context.Context, t model.Target) (int64, error) {
	return int64(r.likeCount(t)), nil
}

func (r memLikes) CountByTargets(ctx context.Context, typ model.TargetType, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]int64, len(ids))
	for _, id := range ids {
		out[id] = 0
	}
	for _, l := range r.likes {
		if _, ok := out[l.TargetID]; ok && l.TargetType == typ {
			out[l.TargetID]++
		}
	}
	return out, nil
}

func (r memLikes) LikedTargets(ctx context.Context, userID uuid.UUID, typ model.TargetType, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[uuid.UUID]bool{}
	for _, l := range r.likes {
		if l.UserID == userID && l.TargetType == typ && want[l.TargetID] {
			out[l.TargetID] = true
		}
	}
	return out, nil
}

func (r memLikes) ListUsers(ctx context.Context, t model.Target, p model.PageRequest) ([]model.LikedUser, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.LikedUser
	for i := len(r.likes) - 1; i >= 0; i-- {
		l := r.likes[i]
		if l.TargetType != t.Type || l.TargetID != t.ID {
			continue
		}
		if sum := r.summary(l.UserID); sum != nil {
			all = append(all, model.LikedUser{UserSummary: *sum, LikedAt: l.CreatedAt})
		}
	}
	return paginate(all, p), int64(len(all)), nil
}

func (r memLikes) ListByUser(ctx context.Context, userID uuid.UUID, typ *model.TargetType, p model.PageRequest) ([]model.Like, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.Like
	for i := len(r.likes) - 1; i >= 0; i-- {
		l := r.likes[i]
		if l.UserID == userID && (typ == nil || l.TargetType == *typ) {
			all = append(all, l)
		}
	}
	return paginate(all, p), int64(len(all)), nil
}

// -----------------------------------------------------------------------------
// shares

type memShares struct{ *memStore }

func (r memShares) Create(ctx context.Context, q repository.Querier, sh *model.Share) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sh.ID = uuid.New()
	sh.CreatedAt = r.tick()
	r.shares = append(r.shares, *sh)
	return nil
}

func (r memShares) list(keep func(model.Share) bool, p model.PageRequest) ([]model.Share, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.Share
	for i := len(r.shares) - 1; i >= 0; i-- {
		if keep(r.shares[i]) {
			all = append(all, r.shares[i])
		}
	}
	return paginate(all, p), int64(len(all)), nil
}

func (r memShares) ListByContent(ctx context.Context, contentID uuid.UUID, p model.PageRequest) ([]model.Share, int64, error) {
	return r.list(func(s model.Share) bool { return s.ContentID == contentID }, p)
}

func (r memShares) ListByUser(ctx context.Context, userID uuid.UUID, p model.PageRequest) ([]model.Share, int64, error) {
	return r.list(func(s model.Share) bool { return s.UserID == userID }, p)
}

func (r memShares) ListByPlatform(ctx context.Context, platform string, p model.PageRequest) ([]model.Share, int64, error) {
	return r.list(func(s model.Share) bool { return s.Platform != nil && *s.Platform == platform }, p)
}

func (r memShares) Count(ctx context.Context, contentID uuid.UUID) (int64, error) {
	_, n, err := r.list(func(s model.Share) bool { return s.ContentID == contentID }, model.PageRequest{Page: 1, Limit: 1})
	return n, err
}

func (r memShares) CountByContents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]int64, len(ids))
	for _, id := range ids {
		out[id] = 0
	}
	for _, s := range r.shares {
		if _, ok := out[s.ContentID]; ok {
			out[s.ContentID]++
		}
	}
	return out, nil
}

func (r memShares) Stats(ctx context.Context, contentID uuid.UUID) ([]model.PlatformStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	var nilCount int64
	for _, s := range r.shares {
		if s.ContentID != contentID {
			continue
		}
		if s.Platform == nil {
			nilCount++
			continue
		}
		counts[*s.Platform]++
	}
	var out []model.PlatformStat
	for p, n := range counts {
		p := p
		out = append(out, model.PlatformStat{Platform: &p, Count: n})
	}
	if nilCount > 0 {
		out = append(out, model.PlatformStat{Count: nilCount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// =============================================================================
// COLLABORATOR FAKES
// =============================================================================

type fakeUploader struct {
	uploads []string
	deleted []string
	err     error
}

func (f *fakeUploader) UploadContent(ctx context.Context, up model.Upload) (*ContentMedia, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, _ := io.ReadAll(up.Body)
	key := "uploads/" + up.Filename
	f.uploads = append(f.uploads, key)
	out := &ContentMedia{
		Media:     model.UploadResult{URL: "https://cdn.example.com/" + key, Key: key, FileSize: int64(len(data))},
		MediaType: model.MediaTypeVideo,
	}
	if strings.HasPrefix(up.ContentType, "image/") {
		out.MediaType = model.MediaTypeImage
		out.Thumbnail = &model.UploadResult{URL: "https://cdn.example.com/thumbnails/t.jpg", Key: "thumbnails/t.jpg"}
	}
	return out, nil
}

func (f *fakeUploader) UploadAvatar(ctx context.Context, up model.Upload) (*model.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := "avatars/" + up.Filename
	f.uploads = append(f.uploads, key)
	return &model.UploadResult{URL: "https://cdn.example.com/" + key, Key: key}, nil
}

func (f *fakeUploader) DeleteObject(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.ContentEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, stream string, event queue.ContentEvent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.events = append(f.events, event)
	return "1-0", nil
}

func imageUpload(name string) *model.Upload {
	body := []byte("not really a png")
	return &model.Upload{Body: bytes.NewReader(body), Filename: name, ContentType: "image/png", Size: int64(len(body))}
}

func videoUpload(name string) *model.Upload {
	body := []byte("not really a video")
	return &model.Upload{Body: bytes.NewReader(body), Filename: name, ContentType: "video/mp4", Size: int64(len(body))}
}
