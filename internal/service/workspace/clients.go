package workspace

import (
	"context"
	"fmt"
	"strings"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/appctx"
	"nexus-dashboard/internal/pkg/i18n"
	"nexus-dashboard/internal/service/analytics"
	"nexus-dashboard/internal/service/reconcile"
)

func (w *Workspace) Client(projectID, clientID string) (*domain.Sale, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	rec, err := w.clientLocked(projectID, clientID)
	if err != nil {
		return nil, err
	}
	s := cloneSale(rec.sale)
	return &s, nil
}

// CreateClient appends a client to the project with the next sequence number. Items are padded
// with default tasks, or trimmed, so that their count equals the quantity.
func (w *Workspace) CreateClient(ctx context.Context, ac appctx.Context, projectID string, input domain.SaleInput) (*domain.Sale, error) {
	if err := validateSale(&input); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.projects[projectID]
	if !ok {
		return nil, ErrProjectNotFound
	}
	if err := w.validateWorkersLocked(input.AssignedWorkerIDs); err != nil {
		return nil, err
	}

	seq := 0
	for _, cid := range rec.clientIDs {
		if n := w.clients[cid].sale.SequenceNumber; n > seq {
			seq = n
		}
	}

	sale := saleFromInput(ac, input)
	sale.ID = newID()
	sale.SequenceNumber = seq + 1

	w.clients[sale.ID] = &clientRecord{projectID: projectID, sale: sale}
	rec.clientIDs = append(rec.clientIDs, sale.ID)

	partitions := []string{domain.PartitionProjects}
	if w.notifyAssignedLocked(ac, &sale, nil) {
		partitions = append(partitions, domain.PartitionNotifications)
	}
	if err := w.commit(ctx, partitions...); err != nil {
		return nil, err
	}
	out := cloneSale(sale)
	return &out, nil
}

// UpdateClient replaces the client wholesale. The id, sequence number and owning project are
// preserved. A nil Items or Reminders in input keeps the current ones.
func (w *Workspace) UpdateClient(ctx context.Context, ac appctx.Context, projectID, clientID string, input domain.SaleInput) (*domain.Sale, error) {
	if err := validateSale(&input); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.clientLocked(projectID, clientID)
	if err != nil {
		return nil, err
	}
	if err := w.validateWorkersLocked(input.AssignedWorkerIDs); err != nil {
		return nil, err
	}

	current := cloneSale(rec.sale)
	if input.Items == nil {
		input.Items = current.Items
	}
	if input.Reminders == nil {
		input.Reminders = current.Reminders
	}

	sale := saleFromInput(ac, input)
	sale.ID = current.ID
	sale.SequenceNumber = current.SequenceNumber
	rec.sale = sale

	partitions := []string{domain.PartitionProjects}
	if w.notifyAssignedLocked(ac, &rec.sale, current.AssignedWorkerIDs) {
		partitions = append(partitions, domain.PartitionNotifications)
	}
	if err := w.commit(ctx, partitions...); err != nil {
		return nil, err
	}
	out := cloneSale(rec.sale)
	return &out, nil
}

// DeleteClient removes the client. Unknown ids are a no-op.
func (w *Workspace) DeleteClient(ctx context.Context, projectID, clientID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	crec, ok := w.clients[clientID]
	if !ok || crec.projectID != projectID {
		return nil
	}
	prec := w.projects[projectID]
	for i, cid := range prec.clientIDs {
		if cid == clientID {
			prec.clientIDs = append(prec.clientIDs[:i], prec.clientIDs[i+1:]...)
			break
		}
	}
	delete(w.clients, clientID)

	return w.commit(ctx, domain.PartitionProjects)
}

func (w *Workspace) ToggleItemPaid(ctx context.Context, projectID, clientID string, index int) (*domain.Sale, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.clientLocked(projectID, clientID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(rec.sale.Items) {
		return nil, reconcile.ErrItemNotFound
	}
	rec.sale.Items[index].IsPaid = !rec.sale.Items[index].IsPaid

	if err := w.commit(ctx, domain.PartitionProjects); err != nil {
		return nil, err
	}
	out := cloneSale(rec.sale)
	return &out, nil
}

// UpdateItemStatus changes one item's status, reconciles the client status and records the
// change as a reminder. Workers may only touch clients assigned to them.
func (w *Workspace) UpdateItemStatus(ctx context.Context, ac appctx.Context, projectID, clientID string, change reconcile.ItemStatusChange) (*domain.Sale, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.clientLocked(projectID, clientID)
	if err != nil {
		return nil, err
	}
	if !ac.IsAdmin() && !isAssigned(&rec.sale, ac.User) {
		return nil, ErrNotAssigned
	}

	updated := cloneSale(rec.sale)
	if _, err := reconcile.ApplyItemStatus(ac, &updated, change); err != nil {
		return nil, err
	}
	rec.sale = updated

	if err := w.commit(ctx, domain.PartitionProjects); err != nil {
		return nil, err
	}
	out := cloneSale(rec.sale)
	return &out, nil
}

// AddAttachment appends a stored attachment to an item, as a deliverable when deliverable is set.
func (w *Workspace) AddAttachment(ctx context.Context, ac appctx.Context, projectID, clientID string, index int, att domain.Attachment, deliverable bool) (*domain.Sale, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.clientLocked(projectID, clientID)
	if err != nil {
		return nil, err
	}
	if !ac.IsAdmin() && !isAssigned(&rec.sale, ac.User) {
		return nil, ErrNotAssigned
	}
	if index < 0 || index >= len(rec.sale.Items) {
		return nil, reconcile.ErrItemNotFound
	}

	item := &rec.sale.Items[index]
	if deliverable {
		item.Deliverables = append(item.Deliverables, att)
	} else {
		item.Attachments = append(item.Attachments, att)
	}

	if err := w.commit(ctx, domain.PartitionProjects); err != nil {
		return nil, err
	}
	out := cloneSale(rec.sale)
	return &out, nil
}

// AssignWorkers replaces the client's team and instructions and notifies newly added workers.
func (w *Workspace) AssignWorkers(ctx context.Context, ac appctx.Context, projectID, clientID string, workerIDs []string, instructions string) (*domain.Sale, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.clientLocked(projectID, clientID)
	if err != nil {
		return nil, err
	}
	workerIDs = dedupe(workerIDs)
	if err := w.validateWorkersLocked(workerIDs); err != nil {
		return nil, err
	}

	previous := rec.sale.AssignedWorkerIDs
	rec.sale.AssignedWorkerIDs = workerIDs
	rec.sale.TeamInstructions = strings.TrimSpace(instructions)

	partitions := []string{domain.PartitionProjects}
	if w.notifyAssignedLocked(ac, &rec.sale, previous) {
		partitions = append(partitions, domain.PartitionNotifications)
	}
	if err := w.commit(ctx, partitions...); err != nil {
		return nil, err
	}
	out := cloneSale(rec.sale)
	return &out, nil
}

func (w *Workspace) AddReminder(ctx context.Context, projectID, clientID string, input domain.CreateReminderInput) (*domain.Reminder, error) {
	note := strings.TrimSpace(input.Note)
	if note == "" {
		return nil, ErrEmptyMessage
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.clientLocked(projectID, clientID)
	if err != nil {
		return nil, err
	}
	reminder := domain.Reminder{
		ID:   newID(),
		Date: input.Date,
		Note: note,
	}
	if reminder.Date.IsZero() {
		reminder.Date = w.clock.Now()
	}
	rec.sale.Reminders = append(rec.sale.Reminders, reminder)

	if err := w.commit(ctx, domain.PartitionProjects); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// CompleteReminder marks a reminder done. Unknown ids are a no-op.
func (w *Workspace) CompleteReminder(ctx context.Context, projectID, clientID, reminderID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.clientLocked(projectID, clientID)
	if err != nil {
		return nil
	}
	for i := range rec.sale.Reminders {
		r := &rec.sale.Reminders[i]
		if r.ID != reminderID {
			continue
		}
		if r.IsCompleted {
			return nil
		}
		r.IsCompleted = true
		return w.commit(ctx, domain.PartitionProjects)
	}
	return nil
}

// AssignedTo lists the clients the user works on, in project order.
func (w *Workspace) AssignedTo(userID string) []analytics.ProjectClient {
	projects := w.Projects()
	var out []analytics.ProjectClient
	for _, pc := range analytics.Flatten(projects) {
		for _, id := range pc.Sale.AssignedWorkerIDs {
			if id == userID {
				out = append(out, pc)
				break
			}
		}
	}
	return out
}

// AuthorizeAttachment checks that the actor may read the object behind key. Admins may read any
// attachment; workers only those on items of clients assigned to them.
func (w *Workspace) AuthorizeAttachment(ac appctx.Context, key string) error {
	if ac.User == nil {
		return ErrNotAssigned
	}
	if ac.IsAdmin() {
		return nil
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, rec := range w.clients {
		if !isAssigned(&rec.sale, ac.User) {
			continue
		}
		for _, item := range rec.sale.Items {
			if hasAttachment(item.Attachments, key) || hasAttachment(item.Deliverables, key) {
				return nil
			}
		}
	}
	return ErrNotAssigned
}

func hasAttachment(list []domain.Attachment, key string) bool {
	for _, a := range list {
		if a.Data == key {
			return true
		}
	}
	return false
}

func (w *Workspace) clientLocked(projectID, clientID string) (*clientRecord, error) {
	if _, ok := w.projects[projectID]; !ok {
		return nil, ErrProjectNotFound
	}
	rec, ok := w.clients[clientID]
	if !ok || rec.projectID != projectID {
		return nil, ErrClientNotFound
	}
	return rec, nil
}

func (w *Workspace) validateWorkersLocked(ids []string) error {
	for _, id := range ids {
		if w.userIndexLocked(id) < 0 {
			return fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
	}
	return nil
}

// notifyAssignedLocked notifies every worker in s that was not in previous and reports whether
// anything was sent.
func (w *Workspace) notifyAssignedLocked(ac appctx.Context, s *domain.Sale, previous []string) bool {
	sent := false
	for _, id := range s.AssignedWorkerIDs {
		if contains(previous, id) {
			continue
		}
		w.notifications = append(w.notifications, domain.GlobalNotification{
			ID:           newID(),
			TargetUserID: id,
			FromUserName: ac.ActorName(),
			Message: i18n.Format(ac.Locale, "TASK_ASSIGNED", map[string]string{
				"actor":  ac.ActorName(),
				"client": s.ClientName,
			}),
			Date: ac.Now(),
			Type: domain.NotifInfo,
		})
		sent = true
	}
	return sent
}

func validateSale(input *domain.SaleInput) error {
	input.ClientName = strings.TrimSpace(input.ClientName)
	if input.ClientName == "" {
		return ErrEmptyClientName
	}
	if input.Price < 0 {
		return ErrNegativePrice
	}
	if input.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if input.Status == "" {
		input.Status = domain.StatusLead
	}
	if !input.Status.IsValid() {
		return ErrInvalidSaleStatus
	}
	for i := range input.Items {
		if input.Items[i].Status != "" && !input.Items[i].Status.IsValid() {
			return reconcile.ErrInvalidStatus
		}
	}
	input.AssignedWorkerIDs = dedupe(input.AssignedWorkerIDs)
	return nil
}

func saleFromInput(ac appctx.Context, input domain.SaleInput) domain.Sale {
	s := domain.Sale{
		ClientName:             input.ClientName,
		PhoneNumber:            strings.TrimSpace(input.PhoneNumber),
		ServiceType:            strings.TrimSpace(input.ServiceType),
		Status:                 input.Status,
		Price:                  input.Price,
		Quantity:               input.Quantity,
		Items:                  input.Items,
		LeadDate:               input.LeadDate,
		SentDate:               input.SentDate,
		Reminders:              input.Reminders,
		AssignedWorkerIDs:      input.AssignedWorkerIDs,
		TeamInstructions:       strings.TrimSpace(input.TeamInstructions),
		HasClientModifications: input.HasClientModifications,
	}
	if s.LeadDate.IsZero() {
		s.LeadDate = domain.NewDate(ac.Now())
	}
	if s.Quantity == 0 {
		s.Quantity = max(len(s.Items), 1)
	}
	fitItems(&s, i18n.Translate(ac.Locale, "DEFAULT_TASK_NAME"))
	normalizeSale(&s)
	return cloneSale(s)
}

// fitItems makes len(Items) equal Quantity.
func fitItems(s *domain.Sale, defaultName string) {
	if len(s.Items) > s.Quantity {
		s.Items = s.Items[:s.Quantity]
	}
	for len(s.Items) < s.Quantity {
		s.Items = append(s.Items, domain.SaleItem{
			Name:   fmt.Sprintf("%s %d", defaultName, len(s.Items)+1),
			Status: domain.ItemPending,
			Type:   domain.TaskOther,
		})
	}
}

// normalizeSale fills the zero values a client may carry after import.
func normalizeSale(s *domain.Sale) {
	if s.Status == "" {
		s.Status = domain.StatusLead
	}
	if s.Items == nil {
		s.Items = []domain.SaleItem{}
	}
	for i := range s.Items {
		item := &s.Items[i]
		if item.Status == "" {
			item.Status = domain.ItemPending
		}
		if item.Type == "" {
			item.Type = domain.TaskOther
		}
		if item.Attachments == nil {
			item.Attachments = []domain.Attachment{}
		}
	}
	if s.Reminders == nil {
		s.Reminders = []domain.Reminder{}
	}
	if s.AssignedWorkerIDs == nil {
		s.AssignedWorkerIDs = []string{}
	}
}

func isAssigned(s *domain.Sale, u *domain.User) bool {
	return u != nil && contains(s.AssignedWorkerIDs, u.ID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
