// Package core holds the entity model and the storage port shared by the
// generator, the backup importer and every storage adapter.
package core

import "encoding/json"

// Subject is the school discipline a lesson or activity belongs to.
type Subject string

const (
	SubjectPortugues  Subject = "Português"
	SubjectMatematica Subject = "Matematica"
	SubjectCiencias   Subject = "Ciências"
	SubjectHistoria   Subject = "História"
	SubjectGeografia  Subject = "Geografia"
)

// Subjects lists every subject in presentation order.
var Subjects = []Subject{SubjectPortugues, SubjectMatematica, SubjectCiencias, SubjectHistoria, SubjectGeografia}

// GradeLevel is the school year of the class.
type GradeLevel string

const (
	Grade2 GradeLevel = "2º Ano"
	Grade3 GradeLevel = "3º Ano"
	Grade4 GradeLevel = "4º Ano"
)

// GradeLevels lists every grade level in ascending order.
var GradeLevels = []GradeLevel{Grade2, Grade3, Grade4}

// ClassLevel is the proficiency profile of the class.
type ClassLevel string

const (
	LevelRemedial ClassLevel = "Reforço"
	LevelRegular  ClassLevel = "Regular"
	LevelAdvanced ClassLevel = "Avançada"
)

// ClassLevels lists every class level.
var ClassLevels = []ClassLevel{LevelRemedial, LevelRegular, LevelAdvanced}

// ActivityType is the exercise format of an activity sheet.
type ActivityType string

const (
	ActivityComplete        ActivityType = "Complete"
	ActivityLigue           ActivityType = "Ligue"
	ActivityMultiplaEscolha ActivityType = "MultiplaEscolha"
	ActivityVerdadeiroFalso ActivityType = "VerdadeiroFalso"
	ActivityDesenheEscreva  ActivityType = "DesenheEscreva"
	ActivityCacaPalavras    ActivityType = "CaçaPalavras"
	ActivityProbleminhas    ActivityType = "Probleminhas"
	// ActivityAvaliativa marks a sheet mixing several exercise formats.
	ActivityAvaliativa ActivityType = "AtividadeAvaliativa"
)

// ActivityTypes lists every activity type.
var ActivityTypes = []ActivityType{
	ActivityComplete, ActivityLigue, ActivityMultiplaEscolha, ActivityVerdadeiroFalso,
	ActivityDesenheEscreva, ActivityCacaPalavras, ActivityProbleminhas, ActivityAvaliativa,
}

// Source is a web reference returned by grounded generation.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Step is one timed stage of a lesson. Steps are kept in presentation order.
type Step struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Differentiation holds the adaptations for struggling and advanced students.
type Differentiation struct {
	Remedial string `json:"remedial"`
	Advanced string `json:"advanced"`
}

// SchoolHeader selects which header lines are printed on a sheet.
type SchoolHeader struct {
	StudentName bool `json:"studentName"`
	Date        bool `json:"date"`
	TeacherName bool `json:"teacherName"`
}

// Question is one exercise of an activity sheet. Answer is teacher-only.
type Question struct {
	ID          string `json:"id"`
	Instruction string `json:"instruction"`
	Content     string `json:"content"`
	Answer      string `json:"answer,omitempty"`
}

// LessonPlan is a complete plan for one class.
type LessonPlan struct {
	ID              string          `json:"id"`
	CreatedAt       int64           `json:"createdAt"`
	Subject         Subject         `json:"subject"`
	Theme           string          `json:"theme"`
	GradeLevel      GradeLevel      `json:"gradeLevel"`
	Duration        int             `json:"duration"`
	Level           ClassLevel      `json:"level"`
	Objective       string          `json:"objective"`
	Materials       []string        `json:"materials"`
	Steps           []Step          `json:"steps"`
	Differentiation Differentiation `json:"differentiation"`
	Sources         []Source        `json:"sources"`
}

// ActivitySheet is a printable sheet of questions.
type ActivitySheet struct {
	ID           string       `json:"id"`
	CreatedAt    int64        `json:"createdAt"`
	Subject      Subject      `json:"subject"`
	Theme        string       `json:"theme"`
	GradeLevel   GradeLevel   `json:"gradeLevel"`
	Type         ActivityType `json:"type"`
	Level        ClassLevel   `json:"level"`
	SchoolHeader SchoolHeader `json:"schoolHeader"`
	Questions    []Question   `json:"questions"`
	Sources      []Source     `json:"sources"`
}

// Kind discriminates the Entity variants.
type Kind string

const (
	KindLessonPlan    Kind = "plan"
	KindActivitySheet Kind = "activity"
)

// Collection names of the local store.
const (
	CollectionPlans      = "plans"
	CollectionActivities = "activities"
)

// Collections lists every collection the store manages.
var Collections = []string{CollectionPlans, CollectionActivities}

// Collection returns the store collection that holds entities of this kind.
func (k Kind) Collection() string {
	switch k {
	case KindLessonPlan:
		return CollectionPlans
	case KindActivitySheet:
		return CollectionActivities
	}
	return ""
}

// Entity is the closed sum of LessonPlan and ActivitySheet.
// The variant is fixed by the producer; only the backup scan infers it from shape.
type Entity interface {
	EntityID() string
	SetEntityID(id string)
	// Created is the creation time in epoch milliseconds.
	Created() int64
	SetCreated(ms int64)
	Kind() Kind
	isEntity()
}

func (p *LessonPlan) EntityID() string      { return p.ID }
func (p *LessonPlan) SetEntityID(id string) { p.ID = id }
func (p *LessonPlan) Created() int64        { return p.CreatedAt }
func (p *LessonPlan) SetCreated(ms int64)   { p.CreatedAt = ms }
func (p *LessonPlan) Kind() Kind            { return KindLessonPlan }
func (p *LessonPlan) isEntity()             {}

func (a *ActivitySheet) EntityID() string      { return a.ID }
func (a *ActivitySheet) SetEntityID(id string) { a.ID = id }
func (a *ActivitySheet) Created() int64        { return a.CreatedAt }
func (a *ActivitySheet) SetCreated(ms int64)   { a.CreatedAt = ms }
func (a *ActivitySheet) Kind() Kind            { return KindActivitySheet }
func (a *ActivitySheet) isEntity()             {}

// Record is the storage representation of one entity: its id and full JSON document.
type Record struct {
	ID   string
	Data json.RawMessage
}

// EventType represents the type of change in a collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the store.
type Event struct {
	Type       EventType
	Collection string
	ID         string
	Timestamp  int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.Collection + "/" + e.ID
}
