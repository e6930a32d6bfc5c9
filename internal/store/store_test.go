package store_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/Sanmit243/KodJobs/internal/store"
)

func newStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open(%q) unexpected error: %v", path, err)
	}
	return s, path
}

func candidate(name string) store.Candidate {
	return store.Candidate{
		Name:        name,
		Password:    "secret-" + name,
		Email:       name + "@example.com",
		DateOfBirth: "2000-06-15",
	}
}

// ── Create ────────────────────────────────────────────────────────────────

func TestCreate_ThenAuthenticateReturnsSameRecord(t *testing.T) {
	s, _ := newStore(t)

	created, err := s.Create(candidate("alice"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("Create assigned id %d, want 1", created.ID)
	}

	got, err := s.Authenticate("alice", "secret-alice")
	if err != nil {
		t.Fatalf("Authenticate after Create: %v", err)
	}
	if !reflect.DeepEqual(got, created) {
		t.Errorf("Authenticate = %+v, want %+v", got, created)
	}
}

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	s, _ := newStore(t)

	for i := 1; i <= 3; i++ {
		u, err := s.Create(candidate(fmt.Sprintf("user%d", i)))
		if err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
		if u.ID != i {
			t.Errorf("Create #%d assigned id %d, want %d", i, u.ID, i)
		}
	}
}

func TestCreate_DuplicateNameLeavesStoreUnchanged(t *testing.T) {
	s, _ := newStore(t)

	if _, err := s.Create(candidate("bob")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	before, _ := s.List()

	_, err := s.Create(candidate("bob"))
	if !errors.Is(err, store.ErrDuplicateUser) {
		t.Fatalf("duplicate Create error = %v, want ErrDuplicateUser", err)
	}

	after, _ := s.List()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("store changed after rejected insert: before=%+v after=%+v", before, after)
	}
}

func TestCreate_MissingFieldsRejected(t *testing.T) {
	s, _ := newStore(t)

	cases := []store.Candidate{
		{Password: "pw", Email: "a@b.c", DateOfBirth: "2000-01-01"},
		{Name: "x", Email: "a@b.c", DateOfBirth: "2000-01-01"},
		{Name: "x", Password: "pw", DateOfBirth: "2000-01-01"},
		{Name: "x", Password: "pw", Email: "a@b.c"},
	}
	for i, c := range cases {
		_, err := s.Create(c)
		var vErr *store.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("case %d: error = %v, want ValidationError", i, err)
		}
	}

	if users, _ := s.List(); len(users) != 0 {
		t.Errorf("rejected inserts persisted %d record(s)", len(users))
	}
}

func TestCreate_PersistsAcrossReopen(t *testing.T) {
	s, path := newStore(t)

	if _, err := s.Create(candidate("carol")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	reopened, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	users, _ := reopened.List()
	if len(users) != 1 || users[0].Name != "carol" {
		t.Errorf("reopened store = %+v, want one record named carol", users)
	}
}

func TestCreate_WritesPrettyPrintedArray(t *testing.T) {
	s, path := newStore(t)

	if _, err := s.Create(candidate("dave")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("document is not a JSON array: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("document holds %d record(s), want 1", len(raw))
	}
}

func TestCreate_ConcurrentInsertsAllPersist(t *testing.T) {
	s, path := newStore(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Create(candidate(fmt.Sprintf("user%02d", i))); err != nil {
				t.Errorf("concurrent Create #%d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	users, _ := s.List()
	if len(users) != n {
		t.Fatalf("in-memory store holds %d record(s), want %d", len(users), n)
	}

	names := make(map[string]bool, n)
	ids := make(map[int]bool, n)
	for _, u := range users {
		names[u.Name] = true
		ids[u.ID] = true
	}
	if len(names) != n || len(ids) != n {
		t.Errorf("lost update: %d unique names, %d unique ids, want %d each", len(names), len(ids), n)
	}

	// Durable copy must agree with the in-memory table.
	reopened, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	persisted, _ := reopened.List()
	if len(persisted) != n {
		t.Errorf("persisted document holds %d record(s), want %d", len(persisted), n)
	}
}

// ── Authenticate ──────────────────────────────────────────────────────────

func TestAuthenticate_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	s, _ := newStore(t)
	if _, err := s.Create(candidate("erin")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, errWrongPw := s.Authenticate("erin", "nope")
	_, errUnknown := s.Authenticate("nobody", "nope")

	if !errors.Is(errWrongPw, store.ErrAuthFailed) {
		t.Errorf("wrong password error = %v, want ErrAuthFailed", errWrongPw)
	}
	if !errors.Is(errUnknown, store.ErrAuthFailed) {
		t.Errorf("unknown user error = %v, want ErrAuthFailed", errUnknown)
	}
	if errWrongPw.Error() != errUnknown.Error() {
		t.Errorf("outcomes differ: %q vs %q", errWrongPw, errUnknown)
	}
}

func TestAuthenticate_ByEmail(t *testing.T) {
	s, _ := newStore(t)
	if _, err := s.Create(candidate("frank")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Authenticate("frank@example.com", "secret-frank")
	if err != nil {
		t.Fatalf("Authenticate by email: %v", err)
	}
	if got.Name != "frank" {
		t.Errorf("Authenticate returned %q, want frank", got.Name)
	}
}

func TestAuthenticate_ExactCaseMatch(t *testing.T) {
	s, _ := newStore(t)
	if _, err := s.Create(candidate("Grace")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Authenticate("grace", "secret-Grace"); !errors.Is(err, store.ErrAuthFailed) {
		t.Errorf("case-mismatched name should fail, got %v", err)
	}
}

func TestAuthenticate_MissingFieldsRejected(t *testing.T) {
	s, _ := newStore(t)

	var vErr *store.ValidationError
	if _, err := s.Authenticate("", "pw"); !errors.As(err, &vErr) {
		t.Errorf("empty identity: error = %v, want ValidationError", err)
	}
	if _, err := s.Authenticate("someone", ""); !errors.As(err, &vErr) {
		t.Errorf("empty password: error = %v, want ValidationError", err)
	}
}

// ── Open ──────────────────────────────────────────────────────────────────

func TestOpen_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Open(path)
	if !errors.Is(err, store.ErrStorageUnavailable) {
		t.Errorf("Open on corrupt document = %v, want ErrStorageUnavailable", err)
	}
}

func TestOpen_MissingFileIsEmptyCollection(t *testing.T) {
	s, _ := newStore(t)
	users, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("fresh store holds %d record(s), want 0", len(users))
	}
}
