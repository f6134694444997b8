package models

// Token and TokenData keep the tokens/tokendatas tables in the schema.
// Access tokens are stateless and nothing reads or writes these rows.
type Token struct {
	ID          int     `json:"id" gorm:"primaryKey;autoIncrement"`
	AccessToken *string `json:"access_token" gorm:"type:text"`
	TokenType   *string `json:"token_type" gorm:"type:varchar(32)"`
}

func (Token) TableName() string {
	return "tokens"
}

type TokenData struct {
	ID       int     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username *string `json:"username" gorm:"type:varchar(255)"`
}

func (TokenData) TableName() string {
	return "tokendatas"
}
