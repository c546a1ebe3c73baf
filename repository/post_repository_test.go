package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogManagement/models"
)

func TestPostCreateGet_RoundTrip(t *testing.T) {
	roles, users, posts, cleanup := newTestRepos(t, "post_roundtrip")
	defer cleanup()

	role := mustRole(t, roles, "reader")
	author := mustUser(t, users, "alice", role.ID)

	created, err := posts.Create(context.Background(), &models.Post{
		Title: "hello", Body: "first post", AuthorID: author.ID,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if created.ID == 0 || created.Created.IsZero() {
		t.Fatalf("missing server-assigned fields: %+v", created)
	}

	got, err := posts.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Title != "hello" || got.Body != "first post" || got.AuthorID != author.ID {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestPostCreate_CreatedMonotonic(t *testing.T) {
	roles, users, posts, cleanup := newTestRepos(t, "post_monotonic")
	defer cleanup()

	role := mustRole(t, roles, "reader")
	author := mustUser(t, users, "alice", role.ID)

	var prev time.Time
	for i := 0; i < 3; i++ {
		p, err := posts.Create(context.Background(), &models.Post{
			Title: "t", Body: "b", AuthorID: author.ID,
		})
		if err != nil {
			t.Fatalf("create[%d]: %v", i, err)
		}
		if p.Created.Before(prev) {
			t.Fatalf("created went backwards: %v < %v", p.Created, prev)
		}
		prev = p.Created
	}
}

func TestPostCreate_UnknownAuthorIsIntegrityError(t *testing.T) {
	_, _, posts, cleanup := newTestRepos(t, "post_badauthor")
	defer cleanup()

	_, err := posts.Create(context.Background(), &models.Post{Title: "t", Body: "b", AuthorID: 99})
	if !errors.Is(err, ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
}

func TestPostUpdate_PartialKeepsCreatedAndAuthor(t *testing.T) {
	roles, users, posts, cleanup := newTestRepos(t, "post_partial")
	defer cleanup()

	role := mustRole(t, roles, "reader")
	author := mustUser(t, users, "alice", role.ID)
	p, err := posts.Create(context.Background(), &models.Post{Title: "old", Body: "body", AuthorID: author.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "new"
	got, err := posts.Update(context.Background(), p.ID, models.PostUpdate{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "new" || got.Body != "body" {
		t.Fatalf("partial update wrong: %+v", got)
	}
	if !got.Created.Equal(p.Created) || got.AuthorID != p.AuthorID {
		t.Fatalf("immutable fields changed: %+v vs %+v", got, p)
	}
}

func TestPostUpdate_EmptyIsNoOp(t *testing.T) {
	roles, users, posts, cleanup := newTestRepos(t, "post_noop")
	defer cleanup()

	role := mustRole(t, roles, "reader")
	author := mustUser(t, users, "alice", role.ID)
	p, err := posts.Create(context.Background(), &models.Post{Title: "t", Body: "b", AuthorID: author.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := posts.Update(context.Background(), p.ID, models.PostUpdate{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if got.Title != p.Title || got.Body != p.Body || !got.Created.Equal(p.Created) {
		t.Fatalf("record changed by empty update: %+v vs %+v", got, p)
	}
}

func TestPostDelete(t *testing.T) {
	roles, users, posts, cleanup := newTestRepos(t, "post_del")
	defer cleanup()

	role := mustRole(t, roles, "reader")
	author := mustUser(t, users, "alice", role.ID)
	p, err := posts.Create(context.Background(), &models.Post{Title: "t", Body: "b", AuthorID: author.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := posts.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := posts.GetByID(context.Background(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := posts.Delete(context.Background(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
