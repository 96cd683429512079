package services

type serviceManager struct {
	quiz    QuizService
	attempt AttemptService
	scoring ScoringService
}

func NewServiceManager(quiz QuizService, attempt AttemptService, scoring ScoringService) ServiceManager {
	return &serviceManager{
		quiz:    quiz,
		attempt: attempt,
		scoring: scoring,
	}
}

func (m *serviceManager) Quiz() QuizService {
	return m.quiz
}

func (m *serviceManager) Attempt() AttemptService {
	return m.attempt
}

func (m *serviceManager) Scoring() ScoringService {
	return m.scoring
}
