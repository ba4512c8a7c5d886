package domain

// CredentialState состояние одноразового credential отмены
type CredentialState int

const (
	// CredentialUnused credential выпущен и ещё не использован, хранится только его хэш
	CredentialUnused CredentialState = iota + 1
	// CredentialConsumed credential использован; хэш удалён
	CredentialConsumed
)

// CancelCredential credential отмены: либо Unused(hash), либо Consumed
type CancelCredential struct {
	state CredentialState
	hash  string
}

// UnusedCredential создает неиспользованный credential с хэшем
func UnusedCredential(hash string) CancelCredential {
	return CancelCredential{state: CredentialUnused, hash: hash}
}

// ConsumedCredential создает использованный credential
func ConsumedCredential() CancelCredential {
	return CancelCredential{state: CredentialConsumed}
}

// CredentialFromColumn восстанавливает состояние из nullable колонки cancel_token_hash
func CredentialFromColumn(hash *string) CancelCredential {
	if hash == nil || *hash == "" {
		return ConsumedCredential()
	}
	return UnusedCredential(*hash)
}

// State возвращает состояние credential
func (c CancelCredential) State() CredentialState {
	return c.state
}

// Hash возвращает хэш и true, если credential ещё не использован
func (c CancelCredential) Hash() (string, bool) {
	if c.state != CredentialUnused {
		return "", false
	}
	return c.hash, true
}

// IsUsable returns true while the credential can still authorize a cancellation
func (c CancelCredential) IsUsable() bool {
	return c.state == CredentialUnused
}

// Column возвращает значение для колонки cancel_token_hash (nil = использован)
func (c CancelCredential) Column() *string {
	if hash, ok := c.Hash(); ok {
		return &hash
	}
	return nil
}
