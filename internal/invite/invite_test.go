package invite

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/nissyi-gh/taskroom/internal/model"
)

func TestLink(t *testing.T) {
	is := is.New(t)
	sess := model.NewSession("http://localhost:5000", "ab12", "Ann Lee")

	is.Equal(Link("http://localhost:5000/", sess), "http://localhost:5000/tasks.html?name=Ann+Lee&room=AB12")
	is.Equal(Link("http://x", model.Session{Room: "R1"}), "http://x/tasks.html?room=R1")
}

func TestLink_EscapesQuery(t *testing.T) {
	is := is.New(t)
	got := Link("http://x", model.Session{Room: "A&B", User: "a=b"})
	is.True(strings.Contains(got, "room=A%26B"))
	is.True(strings.Contains(got, "name=a%3Db"))
}

func TestText(t *testing.T) {
	is := is.New(t)
	txt := Text("http://x", model.NewSession("http://x", "r00001", "alice"))

	is.True(strings.Contains(txt, "Room code: R00001\n"))
	is.True(strings.Contains(txt, "Invited by: alice\n"))
	is.True(strings.Contains(txt, "http://x/tasks.html?room=R00001\n"))
	is.True(!strings.Contains(txt, "name=")) // the link never carries the inviter's name
}
