// internal/dataset/records.go
package dataset

import (
	"fmt"
	"strings"
	"time"
)

func (g *Generator) id() int {
	id := g.nextID
	g.nextID++
	return id
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func (g *Generator) intn(min, max int) int {
	return g.rng.Intn(max-min+1) + min
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

func (g *Generator) popularity() int {
	return g.intn(100, 5000)
}

func (g *Generator) rating() float64 {
	return float64(g.intn(30, 50)) / 10
}

type geoloc struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// jitter offsets a city center by up to roughly meters in each direction,
// using ~111km per degree of latitude.
func (g *Generator) jitter(lat, lng float64, meters int) geoloc {
	km := float64(meters) / 1000
	degLat := km / 111
	degLng := km / (111 * cos(lat))

	newLat := lat + (g.rng.Float64()*2-1)*degLat
	newLng := lng + (g.rng.Float64()*2-1)*degLng
	return geoloc{
		Lat: round6(newLat),
		Lng: round6(newLng),
	}
}

// makeSearchBlob joins phrase fragments into one lowercased blob.
func makeSearchBlob(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	txt := strings.Join(nonEmpty, " ")
	txt = strings.Join(strings.Fields(txt), " ")
	return strings.ToLower(txt)
}

// phraseOpts feeds buildPhrases; zero values mean "not applicable".
type phraseOpts struct {
	Sport       string
	Role        string
	City        string
	Age         int
	Accolade    string
	Experience  int
	Fee         int
	Prize       int
	CloseHour   int
	Price       int
	TeamSize    int
	CompanyType string
	Hashtag     string
}

// buildPhrases expands record attributes into the synonyms and phrasings
// users actually type, so free-text matching works without analyzers.
func buildPhrases(o phraseOpts) string {
	var phrases []string

	if o.Sport != "" {
		phrases = append(phrases,
			o.Sport,
			o.Sport+" player",
			o.Sport+" coach",
			o.Sport+" tournament",
			o.Sport+" ground",
			o.Sport+" academy",
		)
	}
	if o.Role != "" {
		phrases = append(phrases, o.Role, o.Role+" specialist", o.Role+" training")
	}
	if o.City != "" {
		phrases = append(phrases,
			o.City,
			o.City+" "+o.Sport,
			o.City+" sports",
			"near "+o.City,
		)
	}
	if o.Age > 0 {
		phrases = append(phrases, fmt.Sprintf("%d years", o.Age))
		if o.Age <= 16 {
			phrases = append(phrases, fmt.Sprintf("u%d", o.Age), fmt.Sprintf("under %d", o.Age), "junior")
		} else {
			phrases = append(phrases, "senior")
		}
	}
	if o.Accolade != "" {
		phrases = append(phrases, o.Accolade, fmt.Sprintf("%s %s player", o.Accolade, o.Sport))
	}
	if o.Experience > 0 {
		phrases = append(phrases, fmt.Sprintf("%d years experience", o.Experience), fmt.Sprintf("%d+ years", o.Experience))
		if o.Experience >= 10 {
			phrases = append(phrases, "experienced coach")
		}
	}
	if o.Fee > 0 {
		phrases = append(phrases, fmt.Sprintf("entry fee %d", o.Fee))
		if o.Fee <= 1000 {
			phrases = append(phrases, "under 1000")
		}
		if o.Fee <= 500 {
			phrases = append(phrases, "cheap tournament")
		}
	}
	if o.Prize > 0 {
		phrases = append(phrases, fmt.Sprintf("prize %d", o.Prize))
		if o.Prize >= 100000 {
			phrases = append(phrases, "prize pool above 1 lakh")
		}
	}
	if o.CloseHour > 0 {
		phrases = append(phrases, fmt.Sprintf("open till %d", o.CloseHour))
		if o.CloseHour >= 22 {
			phrases = append(phrases, "open after 10pm")
		}
		if o.CloseHour >= 23 {
			phrases = append(phrases, "late night")
		}
	}
	if o.Price > 0 {
		phrases = append(phrases, fmt.Sprintf("price %d", o.Price))
		if o.Price <= 500 {
			phrases = append(phrases, "cheap coach")
		}
		if o.Price <= 100 {
			phrases = append(phrases, "coach under 100 per session", "very cheap coach")
		}
		if o.Price <= 2000 {
			phrases = append(phrases, "affordable")
		}
	}
	if o.TeamSize > 0 {
		phrases = append(phrases, fmt.Sprintf("%d players", o.TeamSize))
		if o.TeamSize >= 20 {
			phrases = append(phrases, "more than 20 players", "large squad")
		}
	}
	if o.CompanyType != "" {
		phrases = append(phrases, o.CompanyType, o.CompanyType+" company")
	}
	if o.Hashtag != "" {
		phrases = append(phrases, "#"+o.Hashtag, strings.ToLower(o.Hashtag))
	}

	phrases = append(phrases,
		"trials", "tryouts", "open trials", "join now", "public", "private",
		"open to join", "book now", "near me", "best", "top rated", "verified",
		"affordable", "cheap", "premium",
	)

	seen := make(map[string]bool, len(phrases))
	unique := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if !seen[p] {
			seen[p] = true
			unique = append(unique, p)
		}
	}
	return strings.Join(unique, " ")
}

func (g *Generator) players(city cityInfo, sport sportInfo) []Record {
	records := make([]Record, 0, 12)
	for i := 0; i < 12; i++ {
		age := ageBuckets[g.rng.Intn(len(ageBuckets))]
		role := g.pick(sport.Roles)
		accolade := g.pick(accolades)
		geo := g.jitter(city.Lat, city.Lng, g.intn(50, 2000))
		id := g.id()

		certs := []string{}
		if g.chance(0.2) {
			certs = []string{"state coach certified"}
		}

		blob := buildPhrases(phraseOpts{Sport: sport.Name, Role: role, City: city.City, Age: age, Accolade: accolade})

		records = append(records, Record{
			"objectID":         fmt.Sprintf("player_%d", id),
			"type":             "player",
			"name":             fmt.Sprintf("%s_%s_%s_%d_%d", sport.Name, role, city.City, age, id),
			"slug":             fmt.Sprintf("%s-%s-%s-%d", sport.Name, role, city.City, id),
			"sport":            []string{sport.Name},
			"skills":           []string{role},
			"accolades":        []string{accolade},
			"certifications":   certs,
			"age":              age,
			"gender":           g.pick([]string{"male", "female", "other"}),
			"location_city":    city.City,
			"location_area":    g.pick([]string{"Central", "East", "West", "North", "South"}),
			"location_state":   city.State,
			"location_country": "India",
			"_geoloc":          geo,
			"popularity_score": g.popularity(),
			"rating":           g.rating(),
			"reviews_count":    g.intn(0, 200),
			"social_shares":    g.intn(0, 5000),
			"verified":         g.chance(0.5),
			"is_active":        true,
			"content_body":     fmt.Sprintf("%s training, plays %s, %s. Available for trials.", role, sport.Name, accolade),
			"search_blob":      makeSearchBlob(blob, "player profile", "youth", "academy trained"),
		})
	}
	return records
}

func (g *Generator) coaches(city cityInfo, sport sportInfo) []Record {
	records := make([]Record, 0, 6)
	for i := 0; i < 6; i++ {
		bucket := experienceBuckets[i%len(experienceBuckets)]
		exp := g.intn(bucket[0], bucket[1])

		// the first coach per combo is cheap so "coach under 100" queries
		// have something to find
		var price int
		switch {
		case i == 0:
			price = g.intn(50, 120)
		case i <= 2:
			price = g.intn(200, 800)
		default:
			price = g.intn(900, 3500)
		}

		geo := g.jitter(city.Lat, city.Lng, g.intn(50, 1500))
		id := g.id()

		languages := []string{"english", "hindi"}
		if g.intn(1, 3) == 1 {
			languages = []string{"english"}
		}
		certs := []string{strings.ToUpper(sport.Name) + " certified"}
		if g.chance(0.6) {
			certs = append(certs, "level 2")
		}

		blob := buildPhrases(phraseOpts{Sport: sport.Name, Experience: exp, Price: price, City: city.City})

		cheapTag := ""
		if price <= 100 {
			cheapTag = "coach under 100 per session"
		}

		records = append(records, Record{
			"objectID":          fmt.Sprintf("coach_%d", id),
			"type":              "coach",
			"name":              fmt.Sprintf("%s_coach_%dyrs_%s_%d", sport.Name, exp, city.City, id),
			"slug":              fmt.Sprintf("coach-%s-%s-%d", sport.Name, city.City, id),
			"sport":             []string{sport.Name},
			"certifications":    certs,
			"experience_years":  exp,
			"languages":         languages,
			"price_per_session": price,
			"price_currency":    "INR",
			"availability": map[string]interface{}{
				"days":  g.intn(5, 7),
				"times": []string{"6:00-8:00", "17:00-21:00"},
			},
			"location_city":    city.City,
			"location_area":    g.pick([]string{"Central", "East", "West", "North", "South"}),
			"location_state":   city.State,
			"_geoloc":          geo,
			"popularity_score": g.popularity(),
			"rating":           g.rating(),
			"reviews_count":    g.intn(0, 300),
			"verified":         g.chance(0.4),
			"is_active":        true,
			"content_body":     fmt.Sprintf("Coach with %d years experience in %s. Specializes in %s.", exp, sport.Name, g.pick(sport.Roles)),
			"search_blob":      makeSearchBlob(blob, "private coach", "group coaching", "one-on-one", "trial session", cheapTag),
		})
	}
	return records
}

func (g *Generator) events(city cityInfo, sport sportInfo) []Record {
	records := make([]Record, 0, 6)
	now := time.Now()
	for i := 0; i < 6; i++ {
		level := competitiveLevels[i%len(competitiveLevels)]
		fee := feeBuckets[i%len(feeBuckets)]
		prize := prizeBuckets[i%len(prizeBuckets)]
		format := g.pick([]string{"knockout", "league", "round robin"})
		startOffset := g.intn(1, 90)
		duration := g.intn(1, 5)
		minAge := []int{12, 14, 16}[g.rng.Intn(3)]
		maxAge := minAge + g.intn(2, 10)
		geo := g.jitter(city.Lat, city.Lng, g.intn(100, 3000))
		isOnline := g.chance(0.1)
		id := g.id()

		var ticketURL interface{}
		if isOnline {
			ticketURL = fmt.Sprintf("https://tickets.example.com/%d", id)
		}

		blob := buildPhrases(phraseOpts{Sport: sport.Name, Fee: fee, Prize: prize, City: city.City})

		mode := "in-person"
		if isOnline {
			mode = "online"
		}

		records = append(records, Record{
			"objectID":          fmt.Sprintf("event_%d", id),
			"type":              "event",
			"name":              fmt.Sprintf("%s_%s_event_%s_%d_%d", sport.Name, level, city.City, i, id),
			"slug":              fmt.Sprintf("event-%s-%s-%s-%d", sport.Name, level, city.City, id),
			"sport":             []string{sport.Name},
			"entry_fee":         fee,
			"prize_pool":        prize,
			"competitive_level": level,
			"event_format":      format,
			"min_age":           minAge,
			"max_age":           maxAge,
			"start_date":        now.Add(time.Duration(startOffset) * 24 * time.Hour).UnixMilli(),
			"end_date":          now.Add(time.Duration(startOffset+duration) * 24 * time.Hour).UnixMilli(),
			"location_city":     city.City,
			"location_state":    city.State,
			"_geoloc":           geo,
			"popularity_score":  g.popularity(),
			"rating":            g.rating(),
			"ticket_url":        ticketURL,
			"is_online":         isOnline,
			"content_body":      fmt.Sprintf("%s %s event in %s. Format: %s. Entry: %d. Prize: %d", sport.Name, level, city.City, format, fee, prize),
			"search_blob": makeSearchBlob(blob, level, format, "open to all", mode,
				fmt.Sprintf("min age %d", minAge), fmt.Sprintf("max age %d", maxAge)),
		})
	}
	return records
}

func (g *Generator) venues(city cityInfo, sport sportInfo) []Record {
	records := make([]Record, 0, 4)
	for i := 0; i < 4; i++ {
		closeHour := closeHours[i%len(closeHours)]
		hourly := g.intn(600, 4500)
		facs := facilitiesPool[:g.intn(2, len(facilitiesPool))]
		geo := g.jitter(city.Lat, city.Lng, g.intn(50, 2000))
		id := g.id()

		indoor := false
		for _, f := range facs {
			if f == "indoor" {
				indoor = true
			}
		}
		setting := "outdoor"
		if indoor {
			setting = "indoor"
		}

		blob := buildPhrases(phraseOpts{Sport: sport.Name, CloseHour: closeHour, City: city.City, Price: hourly})

		records = append(records, Record{
			"objectID":     fmt.Sprintf("venue_%d", id),
			"type":         "venue",
			"name":         fmt.Sprintf("%s_venue_%s_%d_%d", sport.Name, city.City, closeHour, id),
			"slug":         fmt.Sprintf("venue-%s-%s-%d", sport.Name, city.City, id),
			"sport":        []string{sport.Name},
			"facilities":   facs,
			"hourly_price": hourly,
			"venue_timings": map[string]interface{}{
				"open_hour":  6,
				"close_hour": closeHour,
			},
			"booking_url":      fmt.Sprintf("https://book.example.com/%d", id),
			"location_city":    city.City,
			"location_area":    g.pick([]string{"Central", "East", "West", "North", "South"}),
			"location_state":   city.State,
			"_geoloc":          geo,
			"popularity_score": g.popularity(),
			"rating":           g.rating(),
			"verified":         g.chance(0.4),
			"is_active":        true,
			"content_body":     fmt.Sprintf("%s venue with %s. Available %s.", sport.Name, strings.Join(facs, ", "), setting),
			"search_blob":      makeSearchBlob(blob, setting, "floodlights", "book now", "near stadium"),
		})
	}
	return records
}

func (g *Generator) residences(city cityInfo, sport sportInfo) []Record {
	records := make([]Record, 0, 4)
	for i := 0; i < 4; i++ {
		price := hostelBuckets[i%len(hostelBuckets)]
		features := residenceFeaturesPool[:g.intn(1, len(residenceFeaturesPool))]
		geo := g.jitter(city.Lat, city.Lng, g.intn(200, 4000))
		id := g.id()

		blob := buildPhrases(phraseOpts{Sport: sport.Name, Price: price, City: city.City})

		records = append(records, Record{
			"objectID":            fmt.Sprintf("residence_%d", id),
			"type":                "residence",
			"name":                fmt.Sprintf("%s_hostel_%s_%d_%d", sport.Name, city.City, price, id),
			"slug":                fmt.Sprintf("res-%s-%s-%d", sport.Name, city.City, id),
			"monthly_price":       price,
			"residence_features":  features,
			"location_city":       city.City,
			"location_area":       g.pick([]string{"Near Stadium", "Central", "College Area", "Suburbs"}),
			"location_state":      city.State,
			"_geoloc":             geo,
			"popularity_score":    g.popularity(),
			"rating":              g.rating(),
			"contactless_checkin": g.chance(0.4),
			"content_body":        fmt.Sprintf("Athlete hostel %s. Monthly %d.", strings.Join(features, ", "), price),
			"search_blob": makeSearchBlob(blob, "athlete hostel", strings.Join(features, " "),
				fmt.Sprintf("under %d", price), "near stadium", "ac room"),
		})
	}
	return records
}

func (g *Generator) squads(city cityInfo, sport sportInfo) []Record {
	records := make([]Record, 0, 4)
	for i := 0; i < 4; i++ {
		size := squadSizes[i%len(squadSizes)]
		isPublic := g.chance(0.6)
		openToJoin := g.chance(0.3)
		if isPublic {
			openToJoin = g.chance(0.7)
		}
		geo := g.jitter(city.Lat, city.Lng, g.intn(100, 2500))
		id := g.id()

		blob := buildPhrases(phraseOpts{Sport: sport.Name, TeamSize: size, City: city.City})

		visibility := "private squad"
		if isPublic {
			visibility = "public squad"
		}
		joinability := "closed"
		if openToJoin {
			joinability = "open to join"
		}

		records = append(records, Record{
			"objectID":          fmt.Sprintf("squad_%d", id),
			"type":              "squad",
			"name":              fmt.Sprintf("%s_squad_%s_%d_%d", sport.Name, city.City, size, id),
			"slug":              fmt.Sprintf("squad-%s-%s-%d", sport.Name, city.City, id),
			"sport":             []string{sport.Name},
			"team_size":         size,
			"is_public":         isPublic,
			"open_to_join":      openToJoin,
			"location_city":     city.City,
			"location_state":    city.State,
			"_geoloc":           geo,
			"popularity_score":  g.popularity(),
			"rating":            g.rating(),
			"practice_schedule": []string{"Tue 18:00-20:00", "Thu 18:00-20:00", "Sat 08:00-11:00"},
			"content_body":      fmt.Sprintf("Team training %d players, %s.", size, visibility),
			"search_blob":       makeSearchBlob(blob, visibility, joinability, "join now"),
		})
	}
	return records
}

func (g *Generator) companies(city cityInfo, sport sportInfo) []Record {
	records := make([]Record, 0, 3)
	for i := 0; i < 3; i++ {
		companyType := companyTypes[i%len(companyTypes)]
		geo := g.jitter(city.Lat, city.Lng, g.intn(100, 3000))
		id := g.id()

		var services []string
		switch companyType {
		case "academy":
			services = []string{"training", "coaching", "trials"}
		case "equipment":
			services = []string{"retail", "wholesale"}
		default:
			services = []string{"management", "sponsorship"}
		}

		blob := buildPhrases(phraseOpts{Sport: sport.Name, CompanyType: companyType, City: city.City})

		records = append(records, Record{
			"objectID":         fmt.Sprintf("company_%d", id),
			"type":             "company",
			"name":             fmt.Sprintf("%s_%s_company_%s_%d", sport.Name, companyType, city.City, id),
			"slug":             fmt.Sprintf("company-%s-%s-%s-%d", sport.Name, companyType, city.City, id),
			"company_type":     companyType,
			"sport":            []string{sport.Name},
			"services":         services,
			"location_city":    city.City,
			"location_state":   city.State,
			"_geoloc":          geo,
			"popularity_score": g.popularity(),
			"rating":           g.rating(),
			"verified":         g.chance(0.5),
			"content_body":     fmt.Sprintf("%s offering %s services in %s.", companyType, sport.Name, city.City),
			"search_blob":      makeSearchBlob(blob, companyType, sport.Name+" services", "professional services"),
		})
	}
	return records
}

func (g *Generator) posts(city cityInfo, sport sportInfo) []Record {
	records := make([]Record, 0, 4)
	for i := 0; i < 4; i++ {
		tag := g.pick(hashtagPool)
		postType := g.pick([]string{"highlight", "viral", "news", "announcement"})
		geo := g.jitter(city.Lat, city.Lng, g.intn(50, 2000))
		id := g.id()

		blob := buildPhrases(phraseOpts{Sport: sport.Name, Hashtag: tag, City: city.City})

		records = append(records, Record{
			"objectID":         fmt.Sprintf("post_%d", id),
			"type":             "post",
			"name":             fmt.Sprintf("%s_%s_%s_%s_%d", sport.Name, postType, tag, city.City, id),
			"slug":             fmt.Sprintf("post-%s-%s-%s-%s-%d", sport.Name, postType, tag, city.City, id),
			"post_type":        postType,
			"hashtags":         []string{tag},
			"sport":            []string{sport.Name},
			"location_city":    city.City,
			"location_state":   city.State,
			"_geoloc":          geo,
			"popularity_score": g.popularity(),
			"rating":           g.rating(),
			"social_shares":    g.intn(0, 20000),
			"content_body":     fmt.Sprintf("%s about %s in %s. Tag: %s", postType, sport.Name, city.City, tag),
			"search_blob":      makeSearchBlob(blob, postType, "match highlights", "viral", "latest"),
		})
	}
	return records
}
