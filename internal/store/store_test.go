package store

import (
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func openTemp(t *testing.T) (*SessionStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskroom.db")
	s, err := NewSessionStore(path)
	if err != nil {
		t.Fatalf("NewSessionStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSessionStore_GetSet(t *testing.T) {
	is := is.New(t)
	s, _ := openTemp(t)

	_, ok, err := s.Get("http://a", RoomKey)
	is.NoErr(err)
	is.True(!ok)

	is.NoErr(s.Set("http://a", RoomKey, "ABC123"))
	is.NoErr(s.Set("http://a", RoomKey, "XYZ789"))
	v, ok, err := s.Get("http://a", RoomKey)
	is.NoErr(err)
	is.True(ok)
	is.Equal(v, "XYZ789")

	_, ok, err = s.Get("http://b", RoomKey)
	is.NoErr(err)
	is.True(!ok) // scoped per origin

	is.NoErr(s.Delete("http://a", RoomKey))
	_, ok, err = s.Get("http://a", RoomKey)
	is.NoErr(err)
	is.True(!ok)
}

func TestSessionStore_Resolve(t *testing.T) {
	is := is.New(t)
	s, _ := openTemp(t)
	origin := "http://localhost:5000"

	sess, err := s.Resolve(origin, "abc123", "Alice")
	is.NoErr(err)
	is.Equal(sess.Room, "ABC123")
	is.Equal(sess.User, "Alice")

	// nothing given: remembered values are used
	sess, err = s.Resolve(origin, "", "")
	is.NoErr(err)
	is.Equal(sess.Room, "ABC123")
	is.Equal(sess.User, "Alice")

	// given values overwrite the remembered ones
	sess, err = s.Resolve(origin, "zz9", "")
	is.NoErr(err)
	is.Equal(sess.Room, "ZZ9")
	is.Equal(sess.User, "Alice")
	is.True(sess.Ready())
}

func TestSessionStore_Durable(t *testing.T) {
	is := is.New(t)
	s, path := openTemp(t)
	is.NoErr(s.Set("http://a", NameKey, "Bob"))
	is.NoErr(s.Close())

	reopened, err := NewSessionStore(path)
	is.NoErr(err)
	defer reopened.Close()

	sess, err := reopened.LoadSession("http://a")
	is.NoErr(err)
	is.Equal(sess.User, "Bob")
	is.Equal(sess.Room, "")
	is.True(!sess.Ready())
}
