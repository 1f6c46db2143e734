package greatschools

import (
	"errors"
	"fmt"
	"greatschools/lib/greatschools/structured"
	"greatschools/lib/htmlutil"
	"strconv"
	"strings"
)

// SearchResult is a school returned by Search.
type SearchResult struct {
	GsID            string
	Name            string
	Type            string
	GradeRange      string
	Enrollment      int
	GsRating        int
	ParentRating    int
	City            string
	State           string
	DistrictID      string
	District        string
	DistrictNCESID  string
	Address         string
	Phone           string
	Fax             string
	Website         string
	NcesID          string
	Lat             float64
	Lon             float64
	OverviewLink    string
	RatingsLink     string
	ReviewsLink     string
	SchoolStatsLink string
	// Description is rendered as plain text.
	Description  string
	ThumbnailURL string
}

// SchoolProfile is the detailed record of one school returned by Profile.
type SchoolProfile struct {
	GsID         string
	Name         string
	Type         string
	GradeRange   string
	Enrollment   int
	Address      string
	City         string
	State        string
	District     string
	Phone        string
	Fax          string
	Website      string
	Lat          float64
	Lon          float64
	OverviewLink string
	RatingsLink  string
	ReviewsLink  string
	Description  string
}

// TestScoreRecord is one result of one test, Tests returns one record per
// (test, result) pair.
type TestScoreRecord struct {
	SchoolName      string
	TestName        string
	TestID          string
	TestDescription string
	Abbreviation    string
	Scale           string
	LevelCode       string
	GradeName       string
	SubjectName     string
	// Score is kept verbatim since the service mixes numbers and percentages.
	Score        string
	NumberTested int
	Year         int
}

var (
	searchRepeated  = []string{"school"}
	profileRepeated = []string{"school"}
	testsRepeated   = []string{"test", "testResult"}
)

var errRepeatedField = errors.New("expected a single value, field is repeated")

// fields reads scalar fields off a mapping node, recording the first failure.
// field paths in errors are prefixed with `path`.
type fields struct {
	node *structured.Node
	path string
	err  error
}

func newFields(node *structured.Node, path string) *fields {
	return &fields{node: node, path: path}
}

func (f *fields) name(field string) string {
	return f.path + "." + field
}

// text returns the raw text of a field, elements carrying attributes keep
// theirs under "#text". A field present more than once is an error.
func (f *fields) text(field string) string {
	node := f.node.Field(field)
	switch node.Kind() {
	case structured.Sequence:
		if f.err == nil {
			f.err = structured.InvalidField(f.name(field), errRepeatedField)
		}
		return ""
	case structured.Mapping:
		return node.Field("#text").Text()
	}
	return node.Text()
}

func (f *fields) required(field string) string {
	value := strings.TrimSpace(f.text(field))
	if value == "" && f.err == nil {
		f.err = structured.MissingField(f.name(field))
	}
	return value
}

func (f *fields) optional(field string) string {
	return strings.TrimSpace(f.text(field))
}

func (f *fields) html(field string) string {
	return htmlutil.PlainText(f.text(field))
}

func (f *fields) integer(field string) int {
	value := f.optional(field)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(value, ",", ""))
	if err != nil && f.err == nil {
		f.err = structured.InvalidField(f.name(field), fmt.Errorf("not an integer: %q", value))
	}
	return n
}

func (f *fields) decimal(field string) float64 {
	value := f.optional(field)
	if value == "" {
		return 0
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil && f.err == nil {
		f.err = structured.InvalidField(f.name(field), fmt.Errorf("not a number: %q", value))
	}
	return n
}

func mapSearchResults(root *structured.Node) ([]SearchResult, error) {
	if !root.Has("schools") {
		return nil, structured.MissingField("schools")
	}
	schools := root.Field("schools").List("school")

	results := make([]SearchResult, 0, len(schools))
	for i, school := range schools {
		f := newFields(school, fmt.Sprintf("schools.school[%d]", i))
		result := SearchResult{
			GsID:            f.required("gsId"),
			Name:            f.required("name"),
			Type:            f.optional("type"),
			GradeRange:      f.optional("gradeRange"),
			Enrollment:      f.integer("enrollment"),
			GsRating:        f.integer("gsRating"),
			ParentRating:    f.integer("parentRating"),
			City:            f.optional("city"),
			State:           f.optional("state"),
			DistrictID:      f.optional("districtId"),
			District:        f.optional("district"),
			DistrictNCESID:  f.optional("districtNCESId"),
			Address:         f.optional("address"),
			Phone:           f.optional("phone"),
			Fax:             f.optional("fax"),
			Website:         f.optional("website"),
			NcesID:          f.optional("ncesId"),
			Lat:             f.decimal("lat"),
			Lon:             f.decimal("lon"),
			OverviewLink:    f.optional("overviewLink"),
			RatingsLink:     f.optional("ratingsLink"),
			ReviewsLink:     f.optional("reviewsLink"),
			SchoolStatsLink: f.optional("schoolStatsLink"),
			Description:     f.html("description"),
			ThumbnailURL:    f.optional("thumbnailUrl"),
		}
		if f.err != nil {
			return nil, f.err
		}
		results = append(results, result)
	}
	return results, nil
}

func mapSchoolProfiles(root *structured.Node) ([]SchoolProfile, error) {
	schools := root.List("school")
	if len(schools) == 0 {
		return nil, structured.MissingField("school")
	}

	profiles := make([]SchoolProfile, 0, len(schools))
	for i, school := range schools {
		f := newFields(school, fmt.Sprintf("school[%d]", i))
		profile := SchoolProfile{
			GsID:         f.required("gsId"),
			Name:         f.required("name"),
			Type:         f.optional("type"),
			GradeRange:   f.optional("gradeRange"),
			Enrollment:   f.integer("enrollment"),
			Address:      f.optional("address"),
			City:         f.optional("city"),
			State:        f.optional("state"),
			District:     f.optional("district"),
			Phone:        f.optional("phone"),
			Fax:          f.optional("fax"),
			Website:      f.optional("website"),
			Lat:          f.decimal("lat"),
			Lon:          f.decimal("lon"),
			OverviewLink: f.optional("overviewLink"),
			RatingsLink:  f.optional("ratingsLink"),
			ReviewsLink:  f.optional("reviewsLink"),
			Description:  f.html("description"),
		}
		if f.err != nil {
			return nil, f.err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func mapTestScores(root *structured.Node) ([]TestScoreRecord, error) {
	if !root.Has("testResults") {
		return nil, structured.MissingField("testResults")
	}
	testResults := root.Field("testResults")
	schoolName := strings.TrimSpace(testResults.Field("schoolName").Text())

	var records []TestScoreRecord
	for i, test := range testResults.List("test") {
		tf := newFields(test, fmt.Sprintf("testResults.test[%d]", i))
		base := TestScoreRecord{
			SchoolName:      schoolName,
			TestName:        tf.required("name"),
			TestID:          tf.optional("id"),
			TestDescription: tf.html("description"),
			Abbreviation:    tf.optional("abbreviation"),
			Scale:           tf.optional("scale"),
			LevelCode:       tf.optional("levelCode"),
		}
		if tf.err != nil {
			return nil, tf.err
		}

		results := test.List("testResult")
		if len(results) == 0 {
			records = append(records, base)
			continue
		}
		for j, result := range results {
			rf := newFields(result, fmt.Sprintf("%s.testResult[%d]", tf.path, j))
			record := base
			record.GradeName = rf.optional("gradeName")
			record.SubjectName = rf.optional("subjectName")
			record.Score = rf.optional("score")
			record.NumberTested = rf.integer("numberTested")
			record.Year = rf.integer("year")
			if rf.err != nil {
				return nil, rf.err
			}
			records = append(records, record)
		}
	}

	if records == nil {
		records = []TestScoreRecord{}
	}
	return records, nil
}
