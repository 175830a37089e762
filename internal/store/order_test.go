package store

import (
	"testing"

	"github.com/google/uuid"

	"flowbotz/internal/models"
)

func TestOrderStoreCreateAndList(t *testing.T) {
	db := testDB(t)
	designs := NewDesignStore(db)
	orders := NewOrderStore(db)
	t.Cleanup(func() { cleanDesigns(t, db, "store-test-order") })

	d := newTestDesign(t, designs, "store-test-order")

	extID := "pf-draft-1234"
	created, err := orders.Create(&models.OrderDraft{
		DesignID:    d.ID,
		Provider:    "printful",
		ExternalID:  &extID,
		ProductType: "t-shirt",
		Status:      models.OrderDraftSubmitted,
	})
	if err != nil {
		t.Fatalf("create order draft: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("created order draft has nil id")
	}
	if created.Status != models.OrderDraftSubmitted {
		t.Errorf("status = %q, want submitted", created.Status)
	}

	list, err := orders.ListByDesign(d.ID)
	if err != nil {
		t.Fatalf("ListByDesign: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("ListByDesign returned %d drafts", len(list))
	}
	if list[0].ExternalID == nil || *list[0].ExternalID != extID {
		t.Errorf("external id round trip failed: %v", list[0].ExternalID)
	}

	// Deleting the design cascades to its drafts.
	if err := designs.Delete(d.ID); err != nil {
		t.Fatalf("delete design: %v", err)
	}
	list, err = orders.ListByDesign(d.ID)
	if err != nil {
		t.Fatalf("ListByDesign after delete: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("order drafts survived design delete: %d", len(list))
	}
}
