package planetscale

import (
	"context"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/kabsu-me/kabsu-be/model"
	"github.com/upper/db/v4"
)

type NglDB struct {
	sess db.Session
}

func getNglDB(sess db.Session) *NglDB {
	return &NglDB{sess}
}

func (ndb *NglDB) CreateNglQuestion(ctx context.Context, req *appDb.CreateNglQuestion) error {
	_, err := ndb.sess.SQL().
		InsertInto("ngl_question").
		Columns("id", "user_id", "content", "code_name").
		Values(req.Id, req.UserId, req.Content, req.CodeName).
		ExecContext(ctx)
	return err
}

func (ndb *NglDB) GetNglQuestionById(ctx context.Context, id string) (*model.NglQuestion, error) {
	var question model.NglQuestion
	if err := ndb.sess.SQL().
		Select("*").
		From("ngl_question").
		Where("id = ? AND deleted_at IS NULL", id).
		IteratorContext(ctx).
		One(&question); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	answers, err := ndb.getAnswersForQuestions(ctx, []string{question.Id})
	if err != nil {
		return nil, err
	}
	question.Answers = answers[question.Id]
	if question.Answers == nil {
		question.Answers = []*model.NglAnswer{}
	}
	return &question, nil
}

func (ndb *NglDB) GetNglInbox(ctx context.Context, userId string, limit, offset int) ([]*model.NglQuestion, error) {
	var questions []*model.NglQuestion
	if err := ndb.sess.SQL().
		Select("*").
		From("ngl_question").
		Where("user_id = ? AND deleted_at IS NULL", userId).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		IteratorContext(ctx).
		All(&questions); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return questions, nil
	}

	ids := make([]string, len(questions))
	for i, question := range questions {
		ids[i] = question.Id
	}
	answersById, err := ndb.getAnswersForQuestions(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, question := range questions {
		question.Answers = answersById[question.Id]
		if question.Answers == nil {
			question.Answers = []*model.NglAnswer{}
		}
	}
	return questions, nil
}

func (ndb *NglDB) getAnswersForQuestions(ctx context.Context, questionIds []string) (map[string][]*model.NglAnswer, error) {
	var answers []*model.NglAnswer
	if err := ndb.sess.SQL().
		Select("*").
		From("ngl_answer").
		Where("question_id IN ?", questionIds).
		OrderBy("created_at").
		IteratorContext(ctx).
		All(&answers); err != nil {
		return nil, err
	}
	byQuestion := make(map[string][]*model.NglAnswer)
	for _, answer := range answers {
		byQuestion[answer.QuestionId] = append(byQuestion[answer.QuestionId], answer)
	}
	return byQuestion, nil
}

func (ndb *NglDB) CreateNglAnswer(ctx context.Context, questionId, content string) (int64, error) {
	res, err := ndb.sess.SQL().
		InsertInto("ngl_answer").
		Columns("question_id", "content").
		Values(questionId, content).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (ndb *NglDB) MarkNglQuestionAsDeleted(ctx context.Context, id string) error {
	_, err := ndb.sess.SQL().
		Update("ngl_question").
		Set("deleted_at", db.Raw("NOW()")).
		Where("id = ? AND deleted_at IS NULL", id).
		ExecContext(ctx)
	return err
}
