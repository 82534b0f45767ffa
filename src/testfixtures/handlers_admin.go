package testfixtures

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/types"
)

// --- notifications ---

func (b *Backend) listNotifications(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	unreadOnly := ctx.Query("unreadOnly") == "true"
	var out []models.Notification
	for _, n := range b.Notifications {
		if n.UserID != b.CurrentUserID {
			continue
		}
		if unreadOnly && !n.Unread() {
			continue
		}
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	ctx.JSON(http.StatusOK, gin.H{"notifications": out, "totalCount": len(out)})
}

func (b *Backend) markRead(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.Notifications[ctx.Param("id")]
	if !ok {
		notFound(ctx, "Notification not found")
		return
	}
	if n.Unread() {
		now := time.Now().UTC()
		n.ReadAt = &now
	}
	ctx.JSON(http.StatusOK, n)
}

func (b *Backend) markAllRead(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	now := time.Now().UTC()
	for _, n := range b.Notifications {
		if n.UserID == b.CurrentUserID && n.Unread() {
			n.ReadAt = &now
			count++
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

func (b *Backend) deleteNotification(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.Notifications[ctx.Param("id")]; !ok {
		notFound(ctx, "Notification not found")
		return
	}
	delete(b.Notifications, ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}

func (b *Backend) unreadCount(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for _, n := range b.Notifications {
		if n.UserID == b.CurrentUserID && n.Unread() {
			count++
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

// --- users ---

func (b *Backend) me(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.currentUser()
	if u == nil {
		notFound(ctx, "User not found")
		return
	}
	ctx.JSON(http.StatusOK, u)
}

func (b *Backend) updateMe(ctx *gin.Context) {
	var body types.UpdateUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.currentUser()
	if u == nil {
		notFound(ctx, "User not found")
		return
	}
	applyUserUpdate(u, body)
	ctx.JSON(http.StatusOK, u)
}

func (b *Backend) listUsers(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.User
	for _, u := range b.Users {
		if r := ctx.Query("role"); r != "" && string(u.Role) != r {
			continue
		}
		if d := ctx.Query("department"); d != "" && u.Department != d {
			continue
		}
		if a := ctx.Query("isActive"); a != "" {
			want, _ := strconv.ParseBool(a)
			if u.IsActive != want {
				continue
			}
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	ctx.JSON(http.StatusOK, gin.H{"users": out, "totalCount": len(out)})
}

func (b *Backend) createUser(ctx *gin.Context) {
	var body types.CreateUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now().UTC()
	u := &models.User{
		ID: b.newID("u"), Username: body.Username, Email: body.Email,
		Role: models.UserRole(body.Role), Department: body.Department,
		StudentID: body.StudentID, FirstName: body.FirstName, LastName: body.LastName,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	b.Users[u.ID] = u
	ctx.JSON(http.StatusCreated, u)
}

func (b *Backend) updateUser(ctx *gin.Context) {
	var body types.UpdateUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.Users[ctx.Param("id")]
	if !ok {
		notFound(ctx, "User not found")
		return
	}
	applyUserUpdate(u, body)
	ctx.JSON(http.StatusOK, u)
}

func (b *Backend) deleteUser(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.Users[ctx.Param("id")]; !ok {
		notFound(ctx, "User not found")
		return
	}
	delete(b.Users, ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}

func (b *Backend) setUserActive(ctx *gin.Context) {
	var body struct {
		IsActive bool `json:"isActive"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.Users[ctx.Param("id")]
	if !ok {
		notFound(ctx, "User not found")
		return
	}
	u.IsActive = body.IsActive
	u.UpdatedAt = time.Now().UTC()
	ctx.JSON(http.StatusOK, u)
}

func applyUserUpdate(u *models.User, body types.UpdateUserRequestBody) {
	if body.Username != "" {
		u.Username = body.Username
	}
	if body.Email != "" {
		u.Email = body.Email
	}
	if body.Role != "" {
		u.Role = models.UserRole(body.Role)
	}
	if body.Department != "" {
		u.Department = body.Department
	}
	if body.StudentID != "" {
		u.StudentID = body.StudentID
	}
	if body.FirstName != "" {
		u.FirstName = body.FirstName
	}
	if body.LastName != "" {
		u.LastName = body.LastName
	}
	u.UpdatedAt = time.Now().UTC()
}

// --- analytics and recommendations ---

// analyticsBlob serves a canned report. The shapes are intentionally loose,
// mirroring the real backend where report schemas drift release to release.
func (b *Backend) analyticsBlob(kind string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"kind":        kind,
			"generatedAt": time.Now().UTC().Format(time.RFC3339),
			"rows": []gin.H{
				{"resourceId": "r1", "value": 0.75},
				{"resourceId": "r2", "value": 0.4},
			},
		})
	}
}

func (b *Backend) exportAnalytics(ctx *gin.Context) {
	switch ctx.Query("format") {
	case "csv":
		ctx.Data(http.StatusOK, "text/csv", []byte("resourceId,utilization\nr1,0.75\nr2,0.40\n"))
	case "pdf":
		ctx.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.4 fixture export"))
	default:
		badRequest(ctx, "unsupported export format")
	}
}

func (b *Backend) recommendResources(ctx *gin.Context) {
	var body types.RecommendResourcesRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"recommendations": []gin.H{
			{"resourceId": "r1", "score": 0.92, "reason": "matches capacity and features"},
		},
	})
}

func (b *Backend) recommendTimes(ctx *gin.Context) {
	var body types.RecommendTimesRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"slots": []gin.H{
			{"startTime": "10:00", "endTime": "11:00", "confidence": 0.88},
		},
	})
}

func (b *Backend) userPatterns(ctx *gin.Context) {
	userID := ctx.Param("id")
	if userID == "" {
		userID = b.CurrentUserID
	}
	ctx.JSON(http.StatusOK, gin.H{
		"userId":       userID,
		"peakHours":    []int{10, 14},
		"favoriteType": "computer_lab",
	})
}

func (b *Backend) predictResource(ctx *gin.Context) {
	days, _ := strconv.Atoi(ctx.Query("days"))
	ctx.JSON(http.StatusOK, gin.H{
		"resourceId": ctx.Param("id"),
		"days":       days,
		"forecast":   []gin.H{{"date": "2024-01-02", "expectedUtilization": 0.6}},
	})
}

func (b *Backend) detectAnomalies(ctx *gin.Context) {
	days, _ := strconv.Atoi(ctx.Query("days"))
	ctx.JSON(http.StatusOK, gin.H{
		"resourceId": ctx.Param("id"),
		"days":       days,
		"anomalies":  []gin.H{},
	})
}
