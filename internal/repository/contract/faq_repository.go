package contract

import "faq-assist-be/internal/entity"

// IFaqRepository defines FAQ storage operations. Implementations must
// return copies so callers can annotate scores without racing each other.
type IFaqRepository interface {
	FindAll() ([]entity.Faq, error)
	FindById(id int64) (*entity.Faq, error)
	Create(faq *entity.Faq) (*entity.Faq, error)
	Update(id int64, faq *entity.Faq) (*entity.Faq, error)
	Delete(id int64) error
	Count() int
}
