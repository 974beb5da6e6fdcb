package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/alex-pricope/event-judging-system/logging"
	"gorm.io/gorm"
)

type GormTeamStorage struct {
	DB *gorm.DB
}

func (s *GormTeamStorage) Get(ctx context.Context, id string) (*Team, error) {
	var team Team
	err := s.DB.WithContext(ctx).First(&team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logging.Log.Errorf("TEAM: select for ID %s failed: %v", id, err)
		return nil, err
	}
	return &team, nil
}

func (s *GormTeamStorage) GetByName(ctx context.Context, name string) (*Team, error) {
	var team Team
	err := s.DB.WithContext(ctx).First(&team, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logging.Log.Errorf("TEAM: select for name %q failed: %v", name, err)
		return nil, err
	}
	return &team, nil
}

func (s *GormTeamStorage) GetAll(ctx context.Context) ([]*Team, error) {
	var teams []*Team
	if err := s.DB.WithContext(ctx).Order("created_at desc").Find(&teams).Error; err != nil {
		logging.Log.Errorf("TEAM: select all failed: %v", err)
		return nil, err
	}
	return teams, nil
}

func (s *GormTeamStorage) GetByEvent(ctx context.Context, event EventType) ([]*Team, error) {
	var teams []*Team
	if err := s.DB.WithContext(ctx).Where("event_type = ?", event).Order("name").Find(&teams).Error; err != nil {
		logging.Log.Errorf("TEAM: select for event %s failed: %v", event, err)
		return nil, err
	}
	return teams, nil
}

func (s *GormTeamStorage) Create(ctx context.Context, team *Team) error {
	existing, err := s.GetByName(ctx, team.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		logging.Log.Warnf("TEAM: name %q already taken by %s", team.Name, existing.ID)
		return ErrDuplicateName
	}

	team.Normalize()
	if err := s.DB.WithContext(ctx).Create(team).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		logging.Log.Errorf("TEAM: failed to create team: %v", err)
		return err
	}
	return nil
}

func (s *GormTeamStorage) Update(ctx context.Context, team *Team) error {
	existing, err := s.GetByName(ctx, team.Name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != team.ID {
		logging.Log.Warnf("TEAM: name %q already taken by %s", team.Name, existing.ID)
		return ErrDuplicateName
	}

	team.Normalize()
	// selected_for_round2 is only written by SetSelectedForRound2
	res := s.DB.WithContext(ctx).Model(team).Select("*").Omit("created_at", "selected_for_round2").Updates(team)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		logging.Log.Errorf("TEAM: failed to update team: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *GormTeamStorage) SetSelectedForRound2(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Model(&Team{}).Where("id = ?", id).Updates(&Team{SelectedForRound2: true})
	if res.Error != nil {
		logging.Log.Errorf("TEAM: failed to select team %s for round 2: %v", id, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *GormTeamStorage) Delete(ctx context.Context, id string) error {
	if err := s.DB.WithContext(ctx).Delete(&Team{}, "id = ?", id).Error; err != nil {
		logging.Log.Errorf("TEAM: failed to delete team with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("TEAM: deleted team with ID %s", id)
	return nil
}

type GormJudgeStorage struct {
	DB *gorm.DB
}

func (s *GormJudgeStorage) Get(ctx context.Context, id string) (*Judge, error) {
	var judge Judge
	err := s.DB.WithContext(ctx).First(&judge, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logging.Log.Errorf("JUDGE: select for ID %s failed: %v", id, err)
		return nil, err
	}
	return &judge, nil
}

func (s *GormJudgeStorage) GetByEmail(ctx context.Context, email string) (*Judge, error) {
	var judge Judge
	err := s.DB.WithContext(ctx).First(&judge, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logging.Log.Errorf("JUDGE: select for email failed: %v", err)
		return nil, err
	}
	return &judge, nil
}

func (s *GormJudgeStorage) GetAll(ctx context.Context) ([]*Judge, error) {
	var judges []*Judge
	if err := s.DB.WithContext(ctx).Order("created_at desc").Find(&judges).Error; err != nil {
		logging.Log.Errorf("JUDGE: select all failed: %v", err)
		return nil, err
	}
	return judges, nil
}

func (s *GormJudgeStorage) Create(ctx context.Context, judge *Judge) error {
	judge.Email = strings.ToLower(judge.Email)
	existing, err := s.GetByEmail(ctx, judge.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		logging.Log.Warnf("JUDGE: email %s already registered", judge.Email)
		return ErrDuplicateEmail
	}

	if err := s.DB.WithContext(ctx).Create(judge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		logging.Log.Errorf("JUDGE: failed to create judge: %v", err)
		return err
	}
	return nil
}

func (s *GormJudgeStorage) Update(ctx context.Context, judge *Judge) error {
	judge.Email = strings.ToLower(judge.Email)
	existing, err := s.GetByEmail(ctx, judge.Email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != judge.ID {
		return ErrDuplicateEmail
	}

	res := s.DB.WithContext(ctx).Model(judge).Select("*").Omit("created_at").Updates(judge)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		logging.Log.Errorf("JUDGE: failed to update judge: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *GormJudgeStorage) Delete(ctx context.Context, id string) error {
	if err := s.DB.WithContext(ctx).Delete(&Judge{}, "id = ?", id).Error; err != nil {
		logging.Log.Errorf("JUDGE: failed to delete judge with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("JUDGE: deleted judge with ID %s", id)
	return nil
}

type GormAdminStorage struct {
	DB *gorm.DB
}

func (s *GormAdminStorage) Get(ctx context.Context, id string) (*Admin, error) {
	var admin Admin
	err := s.DB.WithContext(ctx).First(&admin, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logging.Log.Errorf("ADMIN: select for ID %s failed: %v", id, err)
		return nil, err
	}
	return &admin, nil
}

func (s *GormAdminStorage) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	var admin Admin
	err := s.DB.WithContext(ctx).First(&admin, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logging.Log.Errorf("ADMIN: select for email failed: %v", err)
		return nil, err
	}
	return &admin, nil
}

func (s *GormAdminStorage) Exists(ctx context.Context) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&Admin{}).Count(&count).Error; err != nil {
		logging.Log.Errorf("ADMIN: count failed: %v", err)
		return false, err
	}
	return count > 0, nil
}

func (s *GormAdminStorage) Create(ctx context.Context, admin *Admin) error {
	admin.Email = strings.ToLower(admin.Email)
	existing, err := s.GetByEmail(ctx, admin.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}
	if err := s.DB.WithContext(ctx).Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		logging.Log.Errorf("ADMIN: failed to create admin: %v", err)
		return err
	}
	return nil
}

type GormEvaluationStorage struct {
	DB *gorm.DB
}

func (s *GormEvaluationStorage) Get(ctx context.Context, teamID, judgeID string) (*Evaluation, error) {
	var evaluation Evaluation
	err := s.DB.WithContext(ctx).First(&evaluation, "team_id = ? AND judge_id = ?", teamID, judgeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logging.Log.Errorf("EVAL: select for team %s judge %s failed: %v", teamID, judgeID, err)
		return nil, err
	}
	return &evaluation, nil
}

func (s *GormEvaluationStorage) GetByTeam(ctx context.Context, teamID string) ([]*Evaluation, error) {
	var evaluations []*Evaluation
	err := s.DB.WithContext(ctx).Where("team_id = ?", teamID).Order("created_at").Find(&evaluations).Error
	if err != nil {
		logging.Log.Errorf("EVAL: select for team %s failed: %v", teamID, err)
		return nil, err
	}
	return evaluations, nil
}

// Put saves by primary key. Callers reuse the stored ID when overwriting an
// existing (team, judge) evaluation.
func (s *GormEvaluationStorage) Put(ctx context.Context, evaluation *Evaluation) error {
	if err := s.DB.WithContext(ctx).Save(evaluation).Error; err != nil {
		logging.Log.Errorf("EVAL: failed to save evaluation: %v", err)
		return err
	}
	return nil
}

func (s *GormEvaluationStorage) DeleteByTeam(ctx context.Context, teamID string) (int, error) {
	res := s.DB.WithContext(ctx).Delete(&Evaluation{}, "team_id = ?", teamID)
	if res.Error != nil {
		logging.Log.Errorf("EVAL: failed to delete evaluations for team %s: %v", teamID, res.Error)
		return 0, res.Error
	}
	logging.Log.Infof("EVAL: deleted %d evaluations for team %s", res.RowsAffected, teamID)
	return int(res.RowsAffected), nil
}
