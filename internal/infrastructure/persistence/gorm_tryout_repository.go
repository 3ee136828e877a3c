package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence/models"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// gormSessionRepository is the implementation of the SessionRepository interface
type gormSessionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSessionRepository creates a new gormSessionRepository instance
func NewGormSessionRepository(db *gorm.DB, logger logger.Logger) (tryout.SessionRepository, error) {
	return &gormSessionRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create adds a new session to the database
func (r *gormSessionRepository) Create(ctx context.Context, session *tryout.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.TryoutSessionModel{}
	model.FromDomain(session)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return tryout.ErrSessionActive
		}
		return errors.Wrap(err, "failed to create tryout session")
	}

	r.logger.Info("Created tryout session with id ", session.ID)
	return nil
}

// GetByID retrieves a session by its ID
func (r *gormSessionRepository) GetByID(ctx context.Context, sessionID string) (*tryout.Session, error) {
	var model models.TryoutSessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tryout.ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch tryout session")
	}
	return model.ToDomain(), nil
}

// FindInProgress returns the latest in-progress session of a user for a package
func (r *gormSessionRepository) FindInProgress(ctx context.Context, userID, packageID string) (*tryout.Session, error) {
	var model models.TryoutSessionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND package_id = ? AND status = ?", userID, packageID, tryout.StatusInProgress).
		Order("started_at desc").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tryout.ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "failed to fetch tryout session")
	}
	return model.ToDomain(), nil
}

// CountCompleted counts the finished attempts of a user on a package
func (r *gormSessionRepository) CountCompleted(ctx context.Context, userID, packageID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TryoutSessionModel{}).
		Where("user_id = ? AND package_id = ? AND status = ?", userID, packageID, tryout.StatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count tryout sessions")
	}
	return count, nil
}

// List returns a user's sessions, newest first
func (r *gormSessionRepository) List(ctx context.Context, query *tryout.SessionQuery) ([]*tryout.Session, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.TryoutSessionModel{}).Where("user_id = ?", query.UserID)
	if query.PackageID != "" {
		dbQuery = dbQuery.Where("package_id = ?", query.PackageID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	dbQuery = paginate(dbQuery.Order("started_at desc"), query.Limit, query.Offset)

	var found []models.TryoutSessionModel
	if err := dbQuery.Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tryout sessions")
	}
	return sessionsToDomain(found), nil
}

// ListExpired returns in-progress sessions whose deadline is at or before now
func (r *gormSessionRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]*tryout.Session, error) {
	dbQuery := r.db.WithContext(ctx).
		Where("status = ? AND ends_at <= ?", tryout.StatusInProgress, now).
		Order("ends_at asc")
	dbQuery = paginate(dbQuery, limit, 0)

	var found []models.TryoutSessionModel
	if err := dbQuery.Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list expired tryout sessions")
	}
	return sessionsToDomain(found), nil
}

// UpdateProgress stores the question the user is looking at
func (r *gormSessionRepository) UpdateProgress(ctx context.Context, sessionID string, currentIndex int) error {
	res := r.db.WithContext(ctx).Model(&models.TryoutSessionModel{}).
		Where("id = ? AND status = ?", sessionID, tryout.StatusInProgress).
		Update("current_index", currentIndex)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to update tryout progress")
	}
	if res.RowsAffected == 0 {
		return tryout.ErrSessionCompleted
	}
	return nil
}

// Finalize completes a session, stores scored answers and folds tag stats in one transaction
func (r *gormSessionRepository) Finalize(ctx context.Context, session *tryout.Session, answers []*tryout.Answer, stats []*tryout.TagStat) (bool, error) {
	if err := session.Validate(); err != nil {
		return false, fmt.Errorf("validation error: %w", err)
	}

	won := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TryoutSessionModel{}).
			Where("id = ? AND status = ?", session.ID, tryout.StatusInProgress).
			Updates(map[string]interface{}{
				"status":         tryout.StatusCompleted,
				"completed_at":   session.CompletedAt,
				"current_index":  session.CurrentIndex,
				"score_twk":      session.ScoreTWK,
				"score_tiu":      session.ScoreTIU,
				"score_tkp":      session.ScoreTKP,
				"total_score":    session.TotalScore,
				"passed":         session.Passed,
				"auto_submitted": session.AutoSubmitted,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to complete tryout session")
		}
		if res.RowsAffected == 0 {
			return nil
		}
		won = true

		if len(answers) > 0 {
			batch := make([]*models.UserAnswerModel, len(answers))
			for i, a := range answers {
				batch[i] = &models.UserAnswerModel{}
				batch[i].FromDomain(a)
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"score", "is_correct"}),
			}).Create(&batch).Error
			if err != nil {
				return errors.Wrap(err, "failed to store scored answers")
			}
		}

		for _, s := range stats {
			model := &models.QuestionTagStatModel{
				ID:         uuid.NewString(),
				UserID:     s.UserID,
				Category:   s.Category,
				Tag:        s.Tag,
				Attempts:   s.Attempts,
				Correct:    s.Correct,
				TotalScore: s.TotalScore,
				UpdatedAt:  *session.CompletedAt,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "category"}, {Name: "tag"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"attempts":    gorm.Expr("question_tag_stats.attempts + excluded.attempts"),
					"correct":     gorm.Expr("question_tag_stats.correct + excluded.correct"),
					"total_score": gorm.Expr("question_tag_stats.total_score + excluded.total_score"),
					"updated_at":  gorm.Expr("excluded.updated_at"),
				}),
			}).Create(model).Error
			if err != nil {
				return errors.Wrap(err, "failed to update tag stats")
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if won {
		r.logger.Info("Completed tryout session with id ", session.ID)
	}
	return won, nil
}

type rankingRow struct {
	UserID     string
	FullName   string
	BestScore  int
	Attempts   int
	EverPassed int
}

// Ranking returns each user's best completed score on a package
func (r *gormSessionRepository) Ranking(ctx context.Context, packageID string, limit int) ([]*tryout.RankingEntry, error) {
	dbQuery := r.db.WithContext(ctx).Table("tryout_sessions AS s").
		Select("s.user_id AS user_id, u.full_name AS full_name, MAX(s.total_score) AS best_score, "+
			"COUNT(*) AS attempts, MAX(CASE WHEN s.passed THEN 1 ELSE 0 END) AS ever_passed").
		Joins("JOIN users AS u ON u.id = s.user_id").
		Where("s.package_id = ? AND s.status = ?", packageID, tryout.StatusCompleted).
		Group("s.user_id, u.full_name").
		Order("best_score desc").Order("MIN(s.completed_at) asc")
	dbQuery = paginate(dbQuery, limit, 0)

	var rows []rankingRow
	if err := dbQuery.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to compute ranking")
	}

	result := make([]*tryout.RankingEntry, len(rows))
	for i, row := range rows {
		result[i] = &tryout.RankingEntry{
			UserID:     row.UserID,
			FullName:   row.FullName,
			BestScore:  row.BestScore,
			Attempts:   row.Attempts,
			EverPassed: row.EverPassed == 1,
		}
	}
	return result, nil
}

func sessionsToDomain(found []models.TryoutSessionModel) []*tryout.Session {
	result := make([]*tryout.Session, len(found))
	for i := range found {
		result[i] = found[i].ToDomain()
	}
	return result
}

// gormAnswerRepository is the implementation of the AnswerRepository interface
type gormAnswerRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAnswerRepository creates a new gormAnswerRepository instance
func NewGormAnswerRepository(db *gorm.DB, logger logger.Logger) (tryout.AnswerRepository, error) {
	return &gormAnswerRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Upsert inserts the answer or replaces the saved one for the same question
func (r *gormAnswerRepository) Upsert(ctx context.Context, answer *tryout.Answer) error {
	if err := answer.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserAnswerModel{}
	model.FromDomain(answer)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.TryoutSessionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", answer.SessionID).First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tryout.ErrSessionNotFound
			}
			return errors.Wrap(err, "failed to lock tryout session")
		}
		if session.Status != tryout.StatusInProgress {
			return tryout.ErrSessionCompleted
		}
		if session.ToDomain().IsExpired(answer.AnsweredAt) {
			return tryout.ErrSessionExpired
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"selected_option", "flagged", "score", "is_correct", "answered_at"}),
		}).Create(model).Error
		if err != nil {
			return errors.Wrap(err, "failed to save answer")
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Saved answer for question ", answer.QuestionID, " in session ", answer.SessionID)
	return nil
}

// ListBySession returns the saved answers of a session
func (r *gormAnswerRepository) ListBySession(ctx context.Context, sessionID string) ([]*tryout.Answer, error) {
	var found []models.UserAnswerModel
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&found).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list answers")
	}

	result := make([]*tryout.Answer, len(found))
	for i := range found {
		result[i] = found[i].ToDomain()
	}
	return result, nil
}

// gormTagStatRepository is the implementation of the TagStatRepository interface
type gormTagStatRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTagStatRepository creates a new gormTagStatRepository instance
func NewGormTagStatRepository(db *gorm.DB, logger logger.Logger) (tryout.TagStatRepository, error) {
	return &gormTagStatRepository{
		db:     db,
		logger: logger,
	}, nil
}

// ListByUser returns a user's tag stats ordered by category and tag
func (r *gormTagStatRepository) ListByUser(ctx context.Context, userID string) ([]*tryout.TagStat, error) {
	var found []models.QuestionTagStatModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("category asc").Order("tag asc").Find(&found).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tag stats")
	}

	result := make([]*tryout.TagStat, len(found))
	for i := range found {
		result[i] = found[i].ToDomain()
	}
	return result, nil
}
