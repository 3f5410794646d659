package service

import (
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sectionModel "formku_backend/internals/features/forms/sections/model"
)

// AssignDenseOrder menghitung urutan 1..N yang rapat untuk semua section hidup.
// Urutan mengikuti requestedOrder; section hidup yang tidak disebut di request
// menempel di belakang sesuai urutan lamanya. Section terhapus tidak disentuh.
// Murni (tanpa side effect) supaya gampang dites.
func AssignDenseOrder(sections []sectionModel.SectionModel, requestedOrder []uuid.UUID) map[uuid.UUID]int {
	live := make([]sectionModel.SectionModel, 0, len(sections))
	for _, s := range sections {
		if !s.SectionDeleted {
			live = append(live, s)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].SectionOrder < live[j].SectionOrder
	})

	liveSet := make(map[uuid.UUID]bool, len(live))
	for _, s := range live {
		liveSet[s.SectionUUID] = true
	}

	result := make(map[uuid.UUID]int, len(live))
	next := 1

	// 1) yang diminta, urut sesuai request (abaikan id asing/duplikat)
	for _, id := range requestedOrder {
		if liveSet[id] {
			if _, done := result[id]; !done {
				result[id] = next
				next++
			}
		}
	}

	// 2) sisanya, pertahankan urutan lama
	for _, s := range live {
		if _, done := result[s.SectionUUID]; !done {
			result[s.SectionUUID] = next
			next++
		}
	}

	return result
}

// NextOrder mengembalikan nilai order untuk section baru (N+1).
func NextOrder(db *gorm.DB, formID uuid.UUID) (int, error) {
	var max int
	err := db.Model(&sectionModel.SectionModel{}).
		Where("section_form_id = ? AND section_deleted = false", formID).
		Select("COALESCE(MAX(section_order), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Reorder menulis ulang section_order semua section hidup milik form
// menjadi 1..N rapat, dalam satu transaksi.
func Reorder(db *gorm.DB, formID uuid.UUID, requestedOrder []uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sections []sectionModel.SectionModel
		if err := tx.
			Where("section_form_id = ?", formID).
			Order("section_order ASC").
			Find(&sections).Error; err != nil {
			return err
		}

		orders := AssignDenseOrder(sections, requestedOrder)
		for id, order := range orders {
			if err := tx.Model(&sectionModel.SectionModel{}).
				Where("section_uuid = ?", id).
				Update("section_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Compact merapatkan kembali urutan setelah sebuah section dihapus
// (soft delete menyisakan lubang di 1..N).
func Compact(db *gorm.DB, formID uuid.UUID) error {
	return Reorder(db, formID, nil)
}
