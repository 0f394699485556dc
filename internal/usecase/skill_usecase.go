package usecase

import (
	"context"

	ucskill "aspiro/internal/usecase/skill"
)

type SkillUsecase interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}

type Skill struct {
	svc *ucskill.Service
}

func NewSkillUsecase(svc *ucskill.Service) *Skill {
	return &Skill{svc: svc}
}

func (u *Skill) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	return u.svc.ExtractSkills(ctx, text)
}
