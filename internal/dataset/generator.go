// internal/dataset/generator.go
package dataset

import (
	"fmt"
	"math"
	"math/rand"

	stderrors "stapubox-search/internal/common/errors"
)

func cos(latDeg float64) float64 {
	return math.Cos(latDeg * math.Pi / 180)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Record is one index document. The index mixes eight record shapes, so
// records stay schema-free maps the same way hits do on the read path.
type Record map[string]interface{}

// MinRecords is the floor the generator must reach; distribution changes
// that drop below it are a bug.
const MinRecords = 1000

type cityInfo struct {
	City  string
	State string
	Lat   float64
	Lng   float64
}

type sportInfo struct {
	Name  string
	Roles []string
}

var cities = []cityInfo{
	{City: "Mumbai", State: "Maharashtra", Lat: 19.076, Lng: 72.877},
	{City: "Delhi", State: "Delhi", Lat: 28.7041, Lng: 77.1025},
	{City: "Bangalore", State: "Karnataka", Lat: 12.9716, Lng: 77.5946},
	{City: "Pune", State: "Maharashtra", Lat: 18.5204, Lng: 73.8567},
	{City: "Hyderabad", State: "Telangana", Lat: 17.385, Lng: 78.4867},
}

var sports = []sportInfo{
	{Name: "cricket", Roles: []string{"left handed batsman", "right handed batsman", "fast bowler", "spin bowler", "all rounder", "wicketkeeper"}},
	{Name: "football", Roles: []string{"striker", "goalkeeper", "defender", "midfielder"}},
	{Name: "badminton", Roles: []string{"singles specialist", "doubles expert", "mixed doubles"}},
	{Name: "chess", Roles: []string{"rated 1400", "rated 1600", "rated 1800", "rated 2000"}},
	{Name: "swimming", Roles: []string{"freestyle sprinter", "butterfly", "backstroke", "breaststroke"}},
	{Name: "athletics", Roles: []string{"sprinter", "middle distance", "long distance", "jumper"}},
}

var (
	accolades             = []string{"district level", "state level", "national medalist"}
	competitiveLevels     = []string{"beginner", "intermediate", "elite"}
	residenceFeaturesPool = []string{"AC", "non AC", "diet plan", "gym access", "near stadium", "laundry included"}
	facilitiesPool        = []string{"parking", "floodlights", "gym", "indoor", "synthetic turf", "shower", "locker room"}
	companyTypes          = []string{"academy", "equipment", "management", "sponsor"}
	hashtagPool           = []string{"CricketTrials", "FootballTournament", "ViralSpike", "MatchHighlights", "JuniorCamp", "OpenTrials"}

	experienceBuckets = [][2]int{{1, 3}, {4, 7}, {8, 12}, {13, 20}}
	ageBuckets        = []int{12, 14, 16, 18, 21, 25}
	feeBuckets        = []int{100, 300, 800, 1500, 3000, 7000}
	prizeBuckets      = []int{10000, 30000, 100000, 300000, 800000}
	hostelBuckets     = []int{3000, 5000, 8000, 11000}
	closeHours        = []int{20, 22, 23, 24}
	squadSizes        = []int{12, 18, 25, 30}
)

// Generator produces the sample index dataset. Seeding the source makes
// runs reproducible, which the tests rely on.
type Generator struct {
	rng    *rand.Rand
	nextID int
}

func New(seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		nextID: 1,
	}
}

// Generate builds the full dataset. It fails rather than returning a
// dataset smaller than MinRecords.
func (g *Generator) Generate() ([]Record, error) {
	var records []Record

	for _, city := range cities {
		for _, sport := range sports {
			records = append(records, g.players(city, sport)...)
			records = append(records, g.coaches(city, sport)...)
			records = append(records, g.events(city, sport)...)
			records = append(records, g.venues(city, sport)...)
			records = append(records, g.residences(city, sport)...)
			records = append(records, g.squads(city, sport)...)
			records = append(records, g.companies(city, sport)...)
			records = append(records, g.posts(city, sport)...)
		}
	}

	if len(records) < MinRecords {
		return nil, stderrors.NewDatasetGenerationFailedError(
			fmt.Sprintf("produced %d records, need at least %d", len(records), MinRecords))
	}

	return records, nil
}
