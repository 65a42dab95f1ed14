package stub

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeOK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func writeReject(w http.ResponseWriter, message string) {
	// Business rejections ride a 200 with success:false, matching the
	// deployed backend.
	writeJSON(w, http.StatusOK, envelope{Success: false, Message: message})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// --- auth ---

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var role models.Role
	var roleLabel string
	switch {
	case req.Username == s.adminUser && req.Password == s.adminPass:
		role = models.RoleSuperAdmin
		// Legacy spelling, as the deployed backend reports it.
		roleLabel = "super admin"
	case s.managerCreds[req.Username] == req.Password && req.Password != "":
		role = models.RoleManager
		roleLabel = "manager"
	default:
		writeReject(w, "Invalid username or password")
		return
	}

	tokens := models.Tokens{AccessToken: uuid.NewString(), RefreshToken: uuid.NewString()}
	s.sessions[tokens.AccessToken] = role

	// Role and tokens ride at the top level of the login payload, not
	// under data.
	resp := struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Role    string        `json:"role"`
		Tokens  models.Tokens `json:"tokens"`
	}{Success: true, Message: "Login successful", Role: roleLabel, Tokens: tokens}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// --- balance ---

type balanceWire struct {
	ID       int64       `json:"id"`
	Balance  float64     `json:"balance"`
	Incomes  []entryWire `json:"incomes"`
	Outcomes []entryWire `json:"outcomes"`
}

type entryWire struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	BalanceID int64     `json:"balanceId"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wire := balanceWire{ID: 1, Balance: s.balance, Incomes: []entryWire{}, Outcomes: []entryWire{}}
	for _, e := range s.incomes {
		wire.Incomes = append(wire.Incomes, toEntryWire(e))
	}
	for _, e := range s.outcomes {
		wire.Outcomes = append(wire.Outcomes, toEntryWire(e))
	}
	writeOK(w, "", []balanceWire{wire})
}

func toEntryWire(e balanceEntry) entryWire {
	return entryWire{ID: e.ID, Amount: e.Amount, Status: string(e.Status), BalanceID: e.BalanceID, Image: e.Image, CreatedAt: e.CreatedAt}
}

type entryForm struct {
	amount float64
	status models.Status
	image  string
	err    string
}

func (s *Server) decodeEntry(r *http.Request) entryForm {
	var f entryForm
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			f.err = "invalid multipart body"
			return f
		}
		amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
		if err != nil {
			f.err = "invalid amount"
			return f
		}
		f.amount = amount
		f.status = models.Status(r.FormValue("status"))
		if _, header, err := r.FormFile("image"); err == nil {
			f.image = header.Filename
		}
		return f
	}
	var req struct {
		Amount float64       `json:"amount"`
		Status models.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		f.err = "invalid request body"
		return f
	}
	f.amount = req.Amount
	f.status = req.Status
	return f
}

func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	f := s.decodeEntry(r)
	if f.err != "" {
		writeFail(w, http.StatusBadRequest, f.err)
		return
	}
	if f.amount <= 0 {
		writeReject(w, "Amount must be greater than zero")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry := balanceEntry{ID: s.allocID(), Amount: f.amount, Status: f.status.OrCompleted(), BalanceID: 1, Image: f.image, CreatedAt: time.Now()}
	s.incomes = append(s.incomes, entry)
	s.balance += f.amount
	s.record(ledgerEntry{Type: models.TxIncome, Amount: f.amount, Status: entry.Status, Image: f.image, Source: "Main balance"})
	writeOK(w, "Income added successfully", nil)
}

func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	f := s.decodeEntry(r)
	if f.err != "" {
		writeFail(w, http.StatusBadRequest, f.err)
		return
	}
	if f.amount <= 0 {
		writeReject(w, "Amount must be greater than zero")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f.amount > s.balance {
		writeReject(w, "Insufficient balance")
		return
	}
	entry := balanceEntry{ID: s.allocID(), Amount: f.amount, Status: f.status.OrCompleted(), BalanceID: 1, Image: f.image, CreatedAt: time.Now()}
	s.outcomes = append(s.outcomes, entry)
	s.balance -= f.amount
	s.record(ledgerEntry{Type: models.TxOutcome, Amount: f.amount, Status: entry.Status, Image: f.image, Source: "Main balance"})
	writeOK(w, "Outcome added successfully", nil)
}

// --- branches ---

type branchWire struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Balance     float64   `json:"balance"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toBranchWire(b *branch) branchWire {
	return branchWire{ID: b.ID, Name: b.Name, Description: b.Description, Balance: b.Balance, CreatedAt: b.CreatedAt}
}

func (s *Server) handleListBranches(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wires := make([]branchWire, 0, len(s.branches))
	for _, b := range s.branches {
		wires = append(wires, toBranchWire(b))
	}
	writeOK(w, "", wires)
}

func (s *Server) handleGetBranch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID json.Number `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, _ := req.ID.Int64()

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.findBranch(id)
	if b == nil {
		writeReject(w, "Branch not found")
		return
	}
	writeOK(w, "", toBranchWire(b))
}

func (s *Server) handleCreateBranch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeFail(w, http.StatusBadRequest, "branch name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.branches {
		if strings.EqualFold(b.Name, req.Name) {
			writeReject(w, "A branch with this name already exists")
			return
		}
	}
	b := &branch{ID: s.allocID(), Name: req.Name, Description: req.Description, CreatedAt: time.Now()}
	s.branches = append(s.branches, b)
	writeOK(w, "Branch created successfully", toBranchWire(b))
}

func (s *Server) handleRenameBranch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldName     string `json:"oldName"`
		NewName     string `json:"newName"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewName == "" {
		writeFail(w, http.StatusBadRequest, "new branch name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.branches {
		if strings.EqualFold(b.Name, req.OldName) {
			b.Name = req.NewName
			b.Description = req.Description
			writeOK(w, "Branch updated successfully", toBranchWire(b))
			return
		}
	}
	writeReject(w, "Branch not found")
}

func (s *Server) handleDeleteBranch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BranchID json.Number `json:"branchId"`
		Name     string      `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, _ := req.BranchID.Int64()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.branches {
		if b.ID == id && strings.EqualFold(b.Name, req.Name) {
			s.branches = append(s.branches[:i], s.branches[i+1:]...)
			writeOK(w, "Branch deleted successfully", nil)
			return
		}
	}
	writeReject(w, "Branch not found")
}

// --- transfers ---

func (s *Server) transferForm(r *http.Request) (map[string]string, string, bool) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return nil, "", false
	}
	fields := map[string]string{}
	for key := range r.MultipartForm.Value {
		fields[key] = r.FormValue(key)
	}
	image := ""
	if _, header, err := r.FormFile("image"); err == nil {
		image = header.Filename
	}
	return fields, image, true
}

func (s *Server) handleReceive(w http.ResponseWriter, r *http.Request) {
	time.Sleep(s.TransferDelay)
	fields, image, ok := s.transferForm(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	amount, err := strconv.ParseFloat(fields["amount"], 64)
	branchID, idErr := strconv.ParseInt(fields["branchId"], 10, 64)
	if err != nil || idErr != nil || amount <= 0 {
		writeFail(w, http.StatusBadRequest, "invalid transfer request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.findBranch(branchID)
	if b == nil {
		writeReject(w, "Branch not found")
		return
	}
	if amount > s.balance {
		writeReject(w, "Insufficient balance")
		return
	}
	s.balance -= amount
	b.Balance += amount
	s.record(ledgerEntry{Type: models.TxBalanceToBranch, Amount: amount, Image: image, BranchName: b.Name})
	writeOK(w, "Transfer successful", nil)
}

func (s *Server) handleGive(w http.ResponseWriter, r *http.Request) {
	time.Sleep(s.TransferDelay)
	fields, image, ok := s.transferForm(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	amount, err := strconv.ParseFloat(fields["amount"], 64)
	branchID, idErr := strconv.ParseInt(fields["branchId"], 10, 64)
	if err != nil || idErr != nil || amount <= 0 {
		writeFail(w, http.StatusBadRequest, "invalid transfer request")
		return
	}
	ugar, _ := strconv.ParseFloat(fields["ugarAmount"], 64)
	reason := fields["reason"]
	if ugar < 0 || ugar > amount {
		writeFail(w, http.StatusBadRequest, "invalid ugar amount")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.findBranch(branchID)
	if b == nil {
		writeReject(w, "Branch not found")
		return
	}
	if amount > b.Balance {
		writeReject(w, "Insufficient branch balance")
		return
	}
	b.Balance -= amount
	s.balance += amount - ugar
	s.record(ledgerEntry{Type: models.TxBranchToBalance, Amount: amount, Image: image, BranchName: b.Name})
	if ugar > 0 {
		s.record(ledgerEntry{Type: models.TxUgarLoss, Amount: ugar, Reason: reason, BranchName: b.Name})
	}
	writeOK(w, "Transfer successful", nil)
}

func (s *Server) handleBranchTransfer(w http.ResponseWriter, r *http.Request) {
	time.Sleep(s.TransferDelay)
	fields, image, ok := s.transferForm(r)
	if !ok {
		writeFail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	amount, err := strconv.ParseFloat(fields["amount"], 64)
	fromID, fromErr := strconv.ParseInt(fields["fromBranchId"], 10, 64)
	toID, toErr := strconv.ParseInt(fields["toBranchId"], 10, 64)
	if err != nil || fromErr != nil || toErr != nil || amount <= 0 {
		writeFail(w, http.StatusBadRequest, "invalid transfer request")
		return
	}
	if fromID == toID {
		writeReject(w, "Source and destination branch must differ")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	from, to := s.findBranch(fromID), s.findBranch(toID)
	if from == nil || to == nil {
		writeReject(w, "Branch not found")
		return
	}
	if amount > from.Balance {
		writeReject(w, "Insufficient branch balance")
		return
	}
	from.Balance -= amount
	to.Balance += amount
	s.record(ledgerEntry{Type: models.TxBranchToBranch, Amount: amount, Image: image, FromBranch: from.Name, ToBranch: to.Name})
	writeOK(w, "Transfer successful", nil)
}

// --- transactions ---

type transactionWire struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status,omitempty"`
	Image      string    `json:"image,omitempty"`
	Source     string    `json:"source,omitempty"`
	BranchName string    `json:"branchName,omitempty"`
	FromBranch string    `json:"fromBranch,omitempty"`
	ToBranch   string    `json:"toBranch,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wires := make([]transactionWire, 0, len(s.ledger))
	for _, e := range s.ledger {
		wires = append(wires, transactionWire{
			ID: e.ID, Type: string(e.Type), Amount: e.Amount, Status: string(e.Status),
			Image: e.Image, Source: e.Source, BranchName: e.BranchName,
			FromBranch: e.FromBranch, ToBranch: e.ToBranch, Reason: e.Reason, CreatedAt: e.CreatedAt,
		})
	}
	writeOK(w, "", wires)
}

// --- managers ---

type managerWire struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	SecondName string    `json:"second_name"`
	ThirdName  string    `json:"third_name,omitempty"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s *Server) handleListManagers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wires := make([]managerWire, 0, len(s.managers))
	for _, m := range s.managers {
		wires = append(wires, managerWire{
			ID: m.ID, FirstName: m.FirstName, SecondName: m.SecondName, ThirdName: m.ThirdName,
			Username: m.Username, Role: "manager", CreatedAt: m.CreatedAt,
		})
	}
	writeOK(w, "", wires)
}

func (s *Server) handleCreateManager(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName  string `json:"first_name"`
		SecondName string `json:"second_name"`
		ThirdName  string `json:"third_name"`
		Username   string `json:"username"`
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeFail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.managerCreds[req.Username]; exists || req.Username == s.adminUser {
		writeReject(w, "Username already taken")
		return
	}
	m := &manager{
		ID: s.allocID(), FirstName: req.FirstName, SecondName: req.SecondName,
		ThirdName: req.ThirdName, Username: req.Username, Password: req.Password,
		CreatedAt: time.Now(),
	}
	s.managers = append(s.managers, m)
	s.managerCreds[req.Username] = req.Password
	writeOK(w, "Manager created successfully", nil)
}

func (s *Server) handleDeleteManager(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.managers {
		if m.Username == req.Username {
			s.managers = append(s.managers[:i], s.managers[i+1:]...)
			delete(s.managerCreds, req.Username)
			writeOK(w, "Manager deleted successfully", nil)
			return
		}
	}
	writeReject(w, "Manager not found")
}

// --- super admin ---

func (s *Server) handleGetAdmin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeOK(w, "", map[string]any{
		"id": 1, "first_name": s.adminFirst, "second_name": s.adminSecond,
		"username": s.adminUser, "role": "super admin",
	})
}

func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeFail(w, http.StatusBadRequest, "username and password are required")
		return
	}
	writeOK(w, "Admin created successfully", nil)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName  string `json:"first_name"`
		SecondName string `json:"second_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.adminFirst, s.adminSecond = req.FirstName, req.SecondName
	writeOK(w, "Profile updated successfully", nil)
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewPassword == "" {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tokenValid(chi.URLParam(r, "token")) {
		writeFail(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	if req.OldPassword != s.adminPass {
		writeReject(w, "Old password is incorrect")
		return
	}
	s.adminPass = req.NewPassword
	writeOK(w, "Password updated successfully", nil)
}

func (s *Server) handleUpdateUsername(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldUsername string `json:"oldUsername"`
		NewUsername string `json:"newUsername"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewUsername == "" {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tokenValid(chi.URLParam(r, "token")) {
		writeFail(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	if req.OldUsername != s.adminUser {
		writeReject(w, "Old username is incorrect")
		return
	}
	s.adminUser = req.NewUsername
	writeOK(w, "Username updated successfully", nil)
}

// tokenValid checks the path token. Callers hold s.mu.
func (s *Server) tokenValid(token string) bool {
	_, ok := s.sessions[token]
	return ok
}
