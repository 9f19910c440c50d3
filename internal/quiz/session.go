package quiz

// State is the lifecycle phase of a quiz session.
type State string

const (
	StateInProgress  State = "in_progress"
	StateFinished    State = "finished"
	StateUnavailable State = "unavailable"
)

// Result records one answered question for later review.
type Result struct {
	Question Question
	Answer   string
	Correct  bool
}

// Session walks through a fixed question list, scoring exact-match answers.
// Finished and unavailable sessions never transition back; start a new
// session instead.
type Session struct {
	questions []Question
	index     int
	score     int
	results   []Result
	state     State
}

// NewSession starts a session over the generated questions. A session with
// no questions at all is unavailable from the start.
func NewSession(questions []Question) *Session {
	state := StateInProgress
	if len(questions) == 0 {
		state = StateUnavailable
	}
	return &Session{
		questions: questions,
		state:     state,
	}
}

func (s *Session) State() State {
	return s.state
}

// Current returns the question waiting for an answer. ok is false once the
// session is no longer in progress.
func (s *Session) Current() (Question, bool) {
	if s.state != StateInProgress {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Answer submits an answer for the current question. Correctness is an exact
// string match against the stored answer. Returns whether the answer was
// correct; answers after the session ended are ignored and report false.
func (s *Session) Answer(answer string) bool {
	if s.state != StateInProgress {
		return false
	}

	question := s.questions[s.index]
	correct := answer == question.Answer
	if correct {
		s.score++
	}
	s.results = append(s.results, Result{
		Question: question,
		Answer:   answer,
		Correct:  correct,
	})

	s.index++
	if s.index >= len(s.questions) {
		s.state = StateFinished
	}
	return correct
}

func (s *Session) Score() int {
	return s.score
}

// Progress reports the zero-based index of the current question and the
// total question count.
func (s *Session) Progress() (int, int) {
	return s.index, len(s.questions)
}

// Results returns the ordered answer log.
func (s *Session) Results() []Result {
	return s.results
}
