package httperr

import "errors"

type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindTransaction       Kind = "transaction"
	KindDatabase          Kind = "database"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string

	// Err é a causa original (erro do driver, por exemplo), preservada
	// na cadeia para log e inspeção.
	Err error
}

func (e BusinessError) Error() string {
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) error {
	return ErrBusiness(KindValidation, code, message)
}

func ErrConflict(code, message string) error {
	return ErrBusiness(KindConflict, code, message)
}

func ErrNotFound(code, message string) error {
	return ErrBusiness(KindNotFound, code, message)
}

func InsufficientStock(code, message string) error {
	return ErrBusiness(KindInsufficientStock, code, message)
}

func Transaction(code, message string, cause error) error {
	return BusinessError{Kind: KindTransaction, Code: code, Message: message, Err: cause}
}

func Database(code, message string, cause error) error {
	return BusinessError{Kind: KindDatabase, Code: code, Message: message, Err: cause}
}

// ClassifyTx traduz o que sai de uma transação: erro de negócio passa
// intacto, violação de check vira conflito e qualquer outra falha de
// armazenamento sobe como erro de transação com a causa preservada.
func ClassifyTx(err error) error {
	if err == nil {
		return nil
	}

	var be BusinessError
	if errors.As(err, &be) {
		return err
	}

	if IsCheckViolation(err) {
		return BusinessError{
			Kind:    KindConflict,
			Code:    "constraint_violation",
			Message: "Operação violou uma restrição do banco.",
			Err:     err,
		}
	}

	return Transaction("transaction_failed", "Falha ao executar a transação.", err)
}

func asBusiness(err error, target *BusinessError) bool {
	return errors.As(err, target)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
