package storage

import (
	"ritmo/internal/domain"
)

// taskModelToDomain converts a TaskModel (GORM) to domain.Task
func taskModelToDomain(m TaskModel) domain.Task {
	return domain.Task{
		ID:                m.ID,
		Description:       m.Description,
		CompletedSessions: m.CompletedSessions,
		TargetSessions:    m.TargetSessions,
		IsToday:           m.IsToday,
		IsFinished:        m.IsFinished,
		GoalID:            m.GoalID,
		Position:          m.Position,
		CreatedAt:         m.CreatedAt,
	}
}

// domainToTaskModel converts a domain.Task to TaskModel (GORM)
func domainToTaskModel(t domain.Task) TaskModel {
	return TaskModel{
		ID:                t.ID,
		Description:       t.Description,
		CompletedSessions: t.CompletedSessions,
		TargetSessions:    t.TargetSessions,
		IsToday:           t.IsToday,
		IsFinished:        t.IsFinished,
		GoalID:            t.GoalID,
		Position:          t.Position,
		CreatedAt:         t.CreatedAt,
	}
}

// goalModelToDomain converts a GoalModel (GORM) to domain.Goal
func goalModelToDomain(m GoalModel) domain.Goal {
	return domain.Goal{
		ID:          m.ID,
		Name:        m.Name,
		OwnerUserID: m.OwnerUserID,
		CreatedAt:   m.CreatedAt,
	}
}

// domainToGoalModel converts a domain.Goal to GoalModel (GORM)
func domainToGoalModel(g domain.Goal) GoalModel {
	return GoalModel{
		ID:          g.ID,
		Name:        g.Name,
		OwnerUserID: g.OwnerUserID,
		CreatedAt:   g.CreatedAt,
	}
}

// quoteModelToDomain converts a QuoteModel (GORM) to domain.Quote
func quoteModelToDomain(m QuoteModel) domain.Quote {
	return domain.Quote{
		ID:          m.ID,
		Content:     m.Content,
		OwnerUserID: m.OwnerUserID,
		CreatedAt:   m.CreatedAt,
	}
}

// domainToQuoteModel converts a domain.Quote to QuoteModel (GORM)
func domainToQuoteModel(q domain.Quote) QuoteModel {
	return QuoteModel{
		ID:          q.ID,
		Content:     q.Content,
		OwnerUserID: q.OwnerUserID,
		CreatedAt:   q.CreatedAt,
	}
}
