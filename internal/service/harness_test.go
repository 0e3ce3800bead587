package service

import (
	"testing"

	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/queue"
)

// harness wires every service over one memStore.
type harness struct {
	store *memStore
	tx    *fakeTx

	genres   *GenreService
	contents *ContentService
	likes    *LikeService
	comments *CommentService
	shares   *ShareService

	uploader  *fakeUploader
	publisher *fakePublisher
}

type harnessOption func(*harness)

// withPublisher routes content side effects through a fake queue.
func withPublisher() harnessOption {
	return func(h *harness) { h.publisher = &fakePublisher{} }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	logger := zap.NewNop()
	h := &harness{store: newMemStore(), tx: &fakeTx{}, uploader: &fakeUploader{}}
	for _, opt := range opts {
		opt(h)
	}

	s := h.store
	h.genres = NewGenreService(memGenres{s}, nil, logger)

	var pub queue.Publisher
	if h.publisher != nil {
		pub = h.publisher
	}
	h.contents = NewContentService(memContents{s}, memComments{s}, memLikes{s}, memShares{s}, h.genres, h.uploader, pub, logger)
	h.likes = NewLikeService(memLikes{s}, memContents{s}, memComments{s}, h.tx, logger)
	h.comments = NewCommentService(memComments{s}, memContents{s}, memLikes{s}, h.tx, logger)
	h.shares = NewShareService(memShares{s}, memContents{s}, h.tx, logger)
	return h
}
