package repository

import (
	"database/sql"
	"fmt"

	"roombooking/internal/db"
)

type CourseRepository struct {
	DB *sql.DB
}

func NewCourseRepository(database *sql.DB) *CourseRepository {
	return &CourseRepository{DB: database}
}

func (r *CourseRepository) List() ([]db.Course, error) {
	rows, err := r.DB.Query(`SELECT id, name, color_hex FROM courses ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	var courses []db.Course
	for rows.Next() {
		var c db.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.ColorHex); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *CourseRepository) Create(c *db.Course) error {
	return r.DB.QueryRow(`INSERT INTO courses (name, color_hex) VALUES ($1, $2) RETURNING id`,
		c.Name, c.ColorHex).Scan(&c.ID)
}

func (r *CourseRepository) Update(c *db.Course) error {
	res, err := r.DB.Exec(`UPDATE courses SET name = $1, color_hex = $2 WHERE id = $3`,
		c.Name, c.ColorHex, c.ID)
	if err != nil {
		return fmt.Errorf("error updating course %d: %w", c.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("course %d not found: %w", c.ID, sql.ErrNoRows)
	}
	return nil
}

func (r *CourseRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("course %d not found: %w", id, sql.ErrNoRows)
	}
	return nil
}
