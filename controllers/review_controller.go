package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/adithyaaneesh/swiggy-api/entity"
	"github.com/adithyaaneesh/swiggy-api/pkg/resp"
	"github.com/adithyaaneesh/swiggy-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReviewController struct{ DB *gorm.DB }

func NewReviewController(db *gorm.DB) *ReviewController { return &ReviewController{DB: db} }

type createReviewReq struct {
	RestaurantID uint   `json:"restaurantId" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

// POST /reviews is get-or-create per (user, restaurant): a second submission
// updates the existing review. The restaurant's running average is
// recomputed in the same transaction.
func (rc *ReviewController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req createReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var restaurant entity.Restaurant
	if err := rc.DB.Select("id").First(&restaurant, req.RestaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	var review entity.Review
	created := false
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND restaurant_id = ?", uid, req.RestaurantID).
			First(&review).Error
		switch {
		case err == nil:
			review.Rating = req.Rating
			review.Comment = req.Comment
			review.ReviewDate = time.Now()
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			review = entity.Review{
				UserID:       uid,
				RestaurantID: req.RestaurantID,
				Rating:       req.Rating,
				Comment:      req.Comment,
				ReviewDate:   time.Now(),
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// running average lives on the restaurant row
		return tx.Exec(`
			UPDATE restaurants
			   SET rating = (SELECT AVG(rating) FROM reviews
			                  WHERE restaurant_id = ? AND deleted_at IS NULL)
			 WHERE id = ?`, req.RestaurantID, req.RestaurantID).Error
	})
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	if created {
		resp.Created(c, review)
		return
	}
	resp.OK(c, review)
}

// GET /restaurants/:id/reviews
func (rc *ReviewController) ListForRestaurant(c *gin.Context) {
	rid, _ := strconv.Atoi(c.Param("id"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var reviews []entity.Review
	if err := rc.DB.Where("restaurant_id = ?", rid).
		Order("review_date DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, gin.H{"items": reviews, "meta": gin.H{"limit": limit, "offset": offset}})
}
