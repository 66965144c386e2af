package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"contact-management/apperr"
	"contact-management/cache"
	"contact-management/logger"
	"contact-management/model"
	"contact-management/phone"
	"contact-management/validator"
)

// PhonePolicy decides what an unnormalizable phone number does to the
// operation. Create drops bad numbers and keeps going; update rejects the whole
// payload, since there the caller named specific entries on purpose.
type PhonePolicy int

const (
	PhoneDrop PhonePolicy = iota
	PhoneReject
)

// ContactService runs every operation as one transaction against the injected
// DB handle. Cache and Audit are optional side-effect sinks; both are
// best-effort and never fail an operation.
type ContactService struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Cache  *cache.ContactCache
	Audit  *AuditLogger
	Region string
}

func NewContactService(db *gorm.DB, log *logger.Logger) *ContactService {
	return &ContactService{DB: db, Log: log.With("service", "ContactService")}
}

// normalizePhone canonicalizes one candidate number under the given policy.
// An empty result with a nil error means the entry carries no phone to
// persist: blank input, or an invalid number under PhoneDrop.
func (s *ContactService) normalizePhone(policy PhonePolicy, raw string) (string, error) {
	normalized, ok := phone.Normalize(raw, s.Region)
	if ok {
		return normalized, nil
	}
	if policy == PhoneReject {
		return "", apperr.Validation("Dados inválidos", []apperr.FieldError{
			{Field: "phone", Message: "Telefone inválido: " + raw},
		})
	}
	s.Log.Debug("dropping invalid phone", "raw", raw)
	return "", nil
}

// CreateContact validates, then inserts the contact and its valid phones in one
// transaction. Numbers that fail normalization are dropped, not fatal
// (PhoneDrop). The returned contact carries the phones actually persisted.
func (s *ContactService) CreateContact(ctx context.Context, in *validator.CreateContactInput) (*model.Contact, error) {
	if err := validator.ValidateCreate(in); err != nil {
		return nil, err
	}

	contact := model.Contact{Name: in.Name, Age: in.Age}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Phones").Create(&contact).Error; err != nil {
			return err
		}

		var phones []model.Phone
		nextID := int64(1)
		for _, p := range in.Phones {
			normalized, err := s.normalizePhone(PhoneDrop, p.Numero)
			if err != nil {
				return err
			}
			if normalized == "" {
				continue
			}
			phones = append(phones, model.Phone{
				ID:        nextID,
				ContactID: contact.ID,
				Number:    normalized,
			})
			nextID++
		}
		if len(phones) > 0 {
			if err := tx.Create(&phones).Error; err != nil {
				return err
			}
		}
		contact.Phones = phones
		return nil
	})
	if err != nil {
		return nil, storageOr(err, "Erro ao criar contato")
	}

	s.cacheSet(ctx, &contact)
	return &contact, nil
}

// SearchContacts matches contacts whose name equals the name filter or whose
// joined phone number equals the phone filter. With both filters absent it
// returns every contact. An empty result is not an error; the response layer
// signals it with its own action code.
func (s *ContactService) SearchContacts(ctx context.Context, in *validator.SearchContactInput) ([]model.Contact, error) {
	if err := validator.ValidateSearch(in); err != nil {
		return nil, err
	}

	contacts := []model.Contact{}
	if in.Name == "" && in.Phone == "" {
		if err := s.DB.WithContext(ctx).Preload("Phones").Find(&contacts).Error; err != nil {
			return nil, storageOr(err, "Erro ao buscar contatos")
		}
		return contacts, nil
	}

	// Stored numbers are always E.164, so the filter has to be normalized the
	// same way or it can never match. A filter that fails normalization is
	// compared raw and simply matches nothing.
	phoneFilter := in.Phone
	if phoneFilter != "" {
		if normalized, ok := phone.Normalize(phoneFilter, s.Region); ok && normalized != "" {
			phoneFilter = normalized
		}
	}

	q := s.DB.WithContext(ctx).Model(&model.Contact{}).
		Joins("LEFT JOIN phones ON phones.contact_id = contacts.id")
	switch {
	case in.Name != "" && phoneFilter != "":
		q = q.Where("contacts.name = ? OR phones.number = ?", in.Name, phoneFilter)
	case in.Name != "":
		q = q.Where("contacts.name = ?", in.Name)
	default:
		q = q.Where("phones.number = ?", phoneFilter)
	}

	var ids []int64
	if err := q.Distinct().Pluck("contacts.id", &ids).Error; err != nil {
		return nil, storageOr(err, "Erro ao buscar contatos")
	}
	if len(ids) == 0 {
		return contacts, nil
	}
	if err := s.DB.WithContext(ctx).Preload("Phones").Where("id IN ?", ids).Find(&contacts).Error; err != nil {
		return nil, storageOr(err, "Erro ao buscar contatos")
	}
	return contacts, nil
}

// UpdateContact overwrites name and age, then reconciles the stored phone set
// against the submitted list inside the same transaction: deletes first, then
// updates, then inserts, so freed ids cannot transiently collide. Any
// unnormalizable number rejects the whole payload before the transaction opens
// (PhoneReject).
func (s *ContactService) UpdateContact(ctx context.Context, id int64, in *validator.UpdateContactInput) (*model.Contact, error) {
	if err := validator.ValidateUpdate(in); err != nil {
		return nil, err
	}

	var badPhones []apperr.FieldError
	for i := range in.Phones {
		normalized, err := s.normalizePhone(PhoneReject, in.Phones[i].Number)
		if err != nil {
			if ae, ok := apperr.As(err); ok {
				badPhones = append(badPhones, ae.Fields...)
				continue
			}
			return nil, err
		}
		if normalized == "" {
			// Whitespace passes the required check but carries no number; an
			// update entry without one is an error, not a row to persist.
			badPhones = append(badPhones, apperr.FieldError{
				Field:   "phone",
				Message: "Telefone inválido: " + in.Phones[i].Number,
			})
			continue
		}
		in.Phones[i].Number = normalized
	}
	if len(badPhones) > 0 {
		return nil, apperr.Validation("Dados inválidos", badPhones)
	}

	var contact model.Contact
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&contact, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Contato não encontrado")
			}
			return err
		}

		if err := tx.Model(&model.Contact{}).Where("id = ?", id).
			Updates(map[string]interface{}{"name": in.Name, "age": in.Age}).Error; err != nil {
			return err
		}

		var existing []model.Phone
		if err := tx.Where("contact_id = ?", id).Find(&existing).Error; err != nil {
			return err
		}

		plan, err := ReconcilePhones(id, existing, in.Phones)
		if err != nil {
			return err
		}
		if len(plan.Delete) > 0 {
			if err := tx.Where("contact_id = ? AND id IN ?", id, plan.Delete).
				Delete(&model.Phone{}).Error; err != nil {
				return err
			}
		}
		for _, p := range plan.Update {
			if err := tx.Model(&model.Phone{}).
				Where("contact_id = ? AND id = ?", id, p.ID).
				Update("number", p.Number).Error; err != nil {
				return err
			}
		}
		if len(plan.Insert) > 0 {
			if err := tx.Create(&plan.Insert).Error; err != nil {
				return err
			}
		}

		contact.Name = in.Name
		contact.Age = in.Age
		return tx.Where("contact_id = ?", id).Find(&contact.Phones).Error
	})
	if err != nil {
		return nil, storageOr(err, "Erro ao atualizar contato")
	}

	s.cacheSet(ctx, &contact)
	return &contact, nil
}

// DeleteContact removes the contact and all its phones in one transaction, then
// hands the removed aggregate to the audit writer outside the critical path.
func (s *ContactService) DeleteContact(ctx context.Context, id int64) error {
	var contact model.Contact
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Phones").First(&contact, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Contato não encontrado")
			}
			return err
		}
		if err := tx.Where("contact_id = ?", id).Delete(&model.Phone{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Contact{}, id).Error
	})
	if err != nil {
		return storageOr(err, "Erro ao deletar contato")
	}

	// After the commit: the Lambda runtime freezes once the response is out,
	// so a detached goroutine would often never run. A synchronous call is
	// still off the commit critical path, and LogDelete swallows its own
	// failures.
	if s.Audit != nil {
		s.Audit.LogDelete(contact)
	}
	s.cacheInvalidate(ctx, id)
	return nil
}

// RefreshAllContactCache rebuilds the Redis cache from the store. Called by the
// scheduled refresh job.
func (s *ContactService) RefreshAllContactCache(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	var contacts []model.Contact
	if err := s.DB.WithContext(ctx).Preload("Phones").Find(&contacts).Error; err != nil {
		return storageOr(err, "Erro ao buscar contatos")
	}
	for i := range contacts {
		if err := s.Cache.Set(ctx, &contacts[i]); err != nil {
			return err
		}
	}
	s.Log.Info("contact cache refreshed", "count", len(contacts))
	return nil
}

func (s *ContactService) cacheSet(ctx context.Context, c *model.Contact) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, c); err != nil {
		s.Log.Warn("cache set failed", "contact_id", c.ID, "error", err)
	}
}

func (s *ContactService) cacheInvalidate(ctx context.Context, id int64) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, id); err != nil {
		s.Log.Warn("cache invalidate failed", "contact_id", id, "error", err)
	}
}

// storageOr keeps typed errors as-is and wraps anything the store raised
// untyped into a Storage error with a client-safe message.
func storageOr(err error, msg string) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Storage(msg, err)
}
