package v1

import (
	"time"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/chat"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// RegisterRequest opens an account
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,numeric,min=8,max=20"`
}

func (r *RegisterRequest) Validate() error { return validators.Struct(r) }

// LoginRequest exchanges credentials for a token
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error { return validators.Struct(r) }

// UpdateProfileRequest changes the caller's profile
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,numeric,min=8,max=20"`
}

func (r *UpdateProfileRequest) Validate() error { return validators.Struct(r) }

// ChangePasswordRequest replaces the caller's password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

func (r *ChangePasswordRequest) Validate() error { return validators.Struct(r) }

// UserResponse is the public view of an account
type UserResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FullName        string     `json:"full_name"`
	Phone           string     `json:"phone,omitempty"`
	Role            string     `json:"role"`
	IsActive        bool       `json:"is_active"`
	DateTimeCreated time.Time  `json:"date_time_created"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
}

func newUserResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		Phone:           u.Phone,
		Role:            u.Role,
		IsActive:        u.IsActive,
		DateTimeCreated: u.DateTimeCreated,
		LastLoginAt:     u.LastLoginAt,
	}
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// SetRoleRequest assigns a role to an account
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user mentor admin"`
}

func (r *SetRoleRequest) Validate() error { return validators.Struct(r) }

// SetActiveRequest activates or deactivates an account
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (r *SetActiveRequest) Validate() error { return validators.Struct(r) }

// PackageRequest creates or replaces a package
type PackageRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=200"`
	Description     string `json:"description" validate:"max=2000"`
	Price           int64  `json:"price" validate:"gte=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1,max=600"`
	IsActive        bool   `json:"is_active"`
	MaxAttempts     int    `json:"max_attempts" validate:"gte=0"`
	PassingTWK      int    `json:"passing_twk" validate:"gte=0"`
	PassingTIU      int    `json:"passing_tiu" validate:"gte=0"`
	PassingTKP      int    `json:"passing_tkp" validate:"gte=0"`
}

func (r *PackageRequest) Validate() error { return validators.Struct(r) }

// ToDomain converts the request into a package with id
func (r *PackageRequest) ToDomain(id string) *catalog.Package {
	return &catalog.Package{
		ID:              id,
		Title:           r.Title,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		IsActive:        r.IsActive,
		MaxAttempts:     r.MaxAttempts,
		PassingTWK:      r.PassingTWK,
		PassingTIU:      r.PassingTIU,
		PassingTKP:      r.PassingTKP,
	}
}

// OptionRequest is one answer choice
type OptionRequest struct {
	Key   string `json:"key" validate:"required,optionkey"`
	Text  string `json:"text" validate:"required,max=1000"`
	Score int    `json:"score" validate:"gte=0,lte=5"`
}

// QuestionRequest creates or replaces a question
type QuestionRequest struct {
	Category      string          `json:"category" validate:"required,skdcategory"`
	Tag           string          `json:"tag" validate:"max=100"`
	Content       string          `json:"content" validate:"required,max=5000"`
	ImageMediaID  *string         `json:"image_media_id" validate:"omitempty,uuid4"`
	Options       []OptionRequest `json:"options" validate:"required,min=2,max=5,dive"`
	CorrectOption string          `json:"correct_option" validate:"omitempty,optionkey"`
	Explanation   string          `json:"explanation" validate:"max=5000"`
	Position      int             `json:"position" validate:"gte=0"`
}

func (r *QuestionRequest) Validate() error { return validators.Struct(r) }

// ToDomain converts the request into a question of packageID
func (r *QuestionRequest) ToDomain(id, packageID string) *catalog.Question {
	q := &catalog.Question{
		ID:            id,
		PackageID:     packageID,
		Category:      r.Category,
		Tag:           r.Tag,
		Content:       r.Content,
		ImageMediaID:  r.ImageMediaID,
		CorrectOption: r.CorrectOption,
		Explanation:   r.Explanation,
		Position:      r.Position,
	}
	for _, o := range r.Options {
		q.Options = append(q.Options, catalog.Option{Key: o.Key, Text: o.Text, Score: o.Score})
	}
	return q
}

// ImportQuestionsRequest appends many questions at once
type ImportQuestionsRequest struct {
	Questions []QuestionRequest `json:"questions" validate:"required,min=1,max=500,dive"`
}

func (r *ImportQuestionsRequest) Validate() error { return validators.Struct(r) }

// ImportQuestionsResponse reports how many questions were stored
type ImportQuestionsResponse struct {
	Imported int `json:"imported"`
}

// StartTryoutRequest starts or resumes an attempt
type StartTryoutRequest struct {
	PackageID string `json:"package_id" validate:"required,uuid4"`
}

func (r *StartTryoutRequest) Validate() error { return validators.Struct(r) }

// StartTryoutResponse tells whether an attempt was resumed
type StartTryoutResponse struct {
	Session *tryout.Session `json:"session"`
	Resumed bool            `json:"resumed"`
}

// QuestionView is a question as shown during an attempt
type QuestionView struct {
	ID           string           `json:"id"`
	Category     string           `json:"category"`
	Tag          string           `json:"tag,omitempty"`
	Content      string           `json:"content"`
	ImageMediaID *string          `json:"image_media_id,omitempty"`
	Options      []OptionView     `json:"options"`
	Position     int              `json:"position"`
	Answer       *AnswerView      `json:"answer,omitempty"`
	Key          *AnswerKeyReview `json:"key,omitempty"`
}

// OptionView hides option weights unless the key is revealed
type OptionView struct {
	Key   string `json:"key"`
	Text  string `json:"text"`
	Score *int   `json:"score,omitempty"`
}

// AnswerView is the caller's saved choice
type AnswerView struct {
	SelectedOption string `json:"selected_option"`
	Flagged        bool   `json:"flagged"`
	Score          *int   `json:"score,omitempty"`
	IsCorrect      *bool  `json:"is_correct,omitempty"`
}

// AnswerKeyReview reveals the answer in a review
type AnswerKeyReview struct {
	CorrectOption string `json:"correct_option"`
	Explanation   string `json:"explanation,omitempty"`
}

func newQuestionView(q *catalog.Question, withScores bool) QuestionView {
	v := QuestionView{
		ID:           q.ID,
		Category:     q.Category,
		Tag:          q.Tag,
		Content:      q.Content,
		ImageMediaID: q.ImageMediaID,
		Position:     q.Position,
	}
	for _, o := range q.Options {
		ov := OptionView{Key: o.Key, Text: o.Text}
		if withScores && q.Category == catalog.CategoryTKP {
			score := o.Score
			ov.Score = &score
		}
		v.Options = append(v.Options, ov)
	}
	return v
}

// TryoutStateResponse is everything needed to continue an attempt
type TryoutStateResponse struct {
	Session          *tryout.Session  `json:"session"`
	Package          *catalog.Package `json:"package"`
	Questions        []QuestionView   `json:"questions"`
	RemainingSeconds int64            `json:"remaining_seconds"`
}

func newTryoutStateResponse(state *tryout.State) TryoutStateResponse {
	answers := make(map[string]*tryout.Answer, len(state.Answers))
	for _, a := range state.Answers {
		answers[a.QuestionID] = a
	}

	resp := TryoutStateResponse{
		Session:          state.Session,
		Package:          state.Package,
		Questions:        make([]QuestionView, 0, len(state.Questions)),
		RemainingSeconds: state.RemainingSeconds,
	}
	for _, q := range state.Questions {
		v := newQuestionView(q, false)
		if a, ok := answers[q.ID]; ok {
			v.Answer = &AnswerView{SelectedOption: a.SelectedOption, Flagged: a.Flagged}
		}
		resp.Questions = append(resp.Questions, v)
	}
	return resp
}

// ResultResponse summarises a completed attempt
type ResultResponse struct {
	Session         *tryout.Session         `json:"session"`
	Categories      []tryout.CategoryResult `json:"categories"`
	TotalScore      int                     `json:"total_score"`
	MaxScore        int                     `json:"max_score"`
	Passed          bool                    `json:"passed"`
	DurationSeconds int64                   `json:"duration_seconds"`
}

func newResultResponse(r *tryout.Result) ResultResponse {
	return ResultResponse{
		Session:         r.Session,
		Categories:      r.Categories,
		TotalScore:      r.TotalScore,
		MaxScore:        r.MaxScore,
		Passed:          r.Passed,
		DurationSeconds: int64(r.Duration.Seconds()),
	}
}

func newReviewResponse(items []*tryout.ReviewItem) []QuestionView {
	out := make([]QuestionView, 0, len(items))
	for _, item := range items {
		v := newQuestionView(item.Question, true)
		v.Key = &AnswerKeyReview{CorrectOption: item.Question.BestOption(), Explanation: item.Question.Explanation}
		if a := item.Answer; a != nil {
			score, correct := a.Score, a.IsCorrect
			v.Answer = &AnswerView{SelectedOption: a.SelectedOption, Flagged: a.Flagged, Score: &score, IsCorrect: &correct}
		}
		out = append(out, v)
	}
	return out
}

// VoucherRequest creates or replaces a voucher
type VoucherRequest struct {
	Code          string    `json:"code" validate:"required,min=3,max=32"`
	Description   string    `json:"description" validate:"max=500"`
	DiscountType  string    `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue int64     `json:"discount_value" validate:"required,gt=0"`
	MaxDiscount   int64     `json:"max_discount" validate:"gte=0"`
	MinPurchase   int64     `json:"min_purchase" validate:"gte=0"`
	MaxUses       int       `json:"max_uses" validate:"gte=0"`
	ValidFrom     time.Time `json:"valid_from" validate:"required"`
	ValidUntil    time.Time `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	IsActive      bool      `json:"is_active"`
}

func (r *VoucherRequest) Validate() error { return validators.Struct(r) }

// ToDomain converts the request into a voucher with id
func (r *VoucherRequest) ToDomain(id string) *billing.Voucher {
	return &billing.Voucher{
		ID:            id,
		Code:          billing.NormalizeCode(r.Code),
		Description:   r.Description,
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		MaxDiscount:   r.MaxDiscount,
		MinPurchase:   r.MinPurchase,
		MaxUses:       r.MaxUses,
		ValidFrom:     r.ValidFrom.UTC(),
		ValidUntil:    r.ValidUntil.UTC(),
		IsActive:      r.IsActive,
	}
}

// QuoteVoucherRequest asks what a code takes off a package
type QuoteVoucherRequest struct {
	Code      string `json:"code" validate:"required,max=32"`
	PackageID string `json:"package_id" validate:"required,uuid4"`
}

func (r *QuoteVoucherRequest) Validate() error { return validators.Struct(r) }

// QuoteVoucherResponse is the priced outcome of a voucher
type QuoteVoucherResponse struct {
	Code        string `json:"code"`
	Amount      int64  `json:"amount"`
	Discount    int64  `json:"discount"`
	FinalAmount int64  `json:"final_amount"`
}

// CheckoutRequest buys a package
type CheckoutRequest struct {
	PackageID   string `json:"package_id" validate:"required,uuid4"`
	VoucherCode string `json:"voucher_code" validate:"max=32"`
}

func (r *CheckoutRequest) Validate() error { return validators.Struct(r) }

// CheckoutResponse carries the payment and how to pay it
type CheckoutResponse struct {
	Payment  *billing.Payment         `json:"payment"`
	Checkout *billing.CheckoutSession `json:"checkout,omitempty"`
}

// AttachProofRequest links an uploaded receipt
type AttachProofRequest struct {
	MediaID string `json:"media_id" validate:"required,uuid4"`
}

func (r *AttachProofRequest) Validate() error { return validators.Struct(r) }

// RejectWithdrawalRequest explains a rejection
type RejectWithdrawalRequest struct {
	Note string `json:"note" validate:"required,max=500"`
}

func (r *RejectWithdrawalRequest) Validate() error { return validators.Struct(r) }

// CreateRoomRequest opens a chat room
type CreateRoomRequest struct {
	Name           string   `json:"name" validate:"max=100"`
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,max=99,dive,uuid4"`
	IsGroup        bool     `json:"is_group"`
}

func (r *CreateRoomRequest) Validate() error { return validators.Struct(r) }

// SendMessageRequest posts a chat message
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (r *SendMessageRequest) Validate() error { return validators.Struct(r) }

// RoomSummaryResponse is a room in the caller's inbox
type RoomSummaryResponse struct {
	Room        *chat.Room    `json:"room"`
	LastMessage *chat.Message `json:"last_message,omitempty"`
	Unread      int64         `json:"unread"`
}
