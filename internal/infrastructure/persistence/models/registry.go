package models

// All returns every model in dependency order for schema migration
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&PackageModel{},
		&QuestionModel{},
		&TryoutSessionModel{},
		&UserAnswerModel{},
		&QuestionTagStatModel{},
		&MediaModel{},
		&VoucherModel{},
		&PaymentModel{},
		&VoucherUsageModel{},
		&MentorBalanceModel{},
		&MentorWithdrawalModel{},
		&ChatRoomModel{},
		&ChatParticipantModel{},
		&ChatMessageModel{},
	}
}
