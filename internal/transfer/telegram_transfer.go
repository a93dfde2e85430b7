package transfer

type TelegramResponse struct {
	OK          bool           `json:"ok"`
	ErrorCode   int            `json:"error_code"`
	Description string         `json:"description"`
	Result      TelegramResult `json:"result"`
}

type TelegramResult struct {
	MessageID int64 `json:"message_id"`
}
