package ingest

import (
	"fmt"
	"math/rand"
	"strings"

	"adminui/internal/model"
)

var (
	firstNames = []string{"Aaron", "Aishwarya", "Arvind", "Caterina", "Chetan", "Jim", "Keshav", "Lucky", "Mahesh", "Nikita", "Priya", "Rahul", "Shreya", "Tanvi", "Vikram", "Zoe"}
	lastNames  = []string{"Miles", "Naik", "Kumar", "Binotto", "Kumar", "McClain", "Muddaiah", "Gupta", "Raut", "Shah", "Iyer", "Verma", "Menon", "Joshi", "Rao", "Park"}
	roles      = []string{"member", "member", "member", "admin"}
)

// DemoMembers generates n members deterministically from seed. IDs are the
// decimal index starting at 1, as in the public members.json.
func DemoMembers(n int, seed int64) []model.Member {
	r := rand.New(rand.NewSource(seed))
	out := make([]model.Member, 0, n)
	for i := 1; i <= n; i++ {
		first := firstNames[r.Intn(len(firstNames))]
		last := lastNames[r.Intn(len(lastNames))]
		out = append(out, model.Member{
			ID:    fmt.Sprint(i),
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s%d@mailinator.com", strings.ToLower(first), strings.ToLower(last), i),
			Role:  roles[r.Intn(len(roles))],
		})
	}
	return out
}
