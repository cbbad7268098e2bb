package api

import (
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rentcompare/server/internal/catalog"
	"rentcompare/server/internal/filterview"
	"rentcompare/server/internal/models"
	"rentcompare/server/internal/processor"
	"rentcompare/server/internal/snapshot"
)

type Handler struct {
	store     *snapshot.Store
	processor *processor.BatchProcessor
	logger    *logrus.Logger
}

// FilterQuery binds the user-facing filter parameters.
type FilterQuery struct {
	Zones       string `form:"zones"`
	MinRent     *int   `form:"min_rent"`
	MaxRent     *int   `form:"max_rent"`
	Search      string `form:"search"`
	GroupByZone bool   `form:"group_by_zone"`
	Sort        string `form:"sort"`
}

func NewHandler(store *snapshot.Store, proc *processor.BatchProcessor, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		store:     store,
		processor: proc,
		logger:    logger,
	}
}

// filterSpec converts the bound query into a filter spec over the snapshot.
func (q FilterQuery) filterSpec() filterview.Spec {
	var zones []string
	if strings.TrimSpace(q.Zones) != "" {
		for _, z := range strings.Split(q.Zones, ",") {
			if z = strings.TrimSpace(z); z != "" {
				zones = append(zones, z)
			}
		}
	}

	return filterview.Spec{
		Zones:       zones,
		MinRent:     q.MinRent,
		MaxRent:     q.MaxRent,
		SearchText:  q.Search,
		GroupByZone: q.GroupByZone,
		Sort:        filterview.SortChoice(q.Sort),
	}
}

// GetListings returns the display-ordered filtered view over the current
// snapshot. Rank values come from the full-dataset ranking and are never
// recomputed from the subset.
func (h *Handler) GetListings(c *gin.Context) {
	var query FilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.WithError(err).Error("Failed to parse filter query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	snap := h.store.Current()
	listings := filterview.Apply(snap.Listings, query.filterSpec())

	c.JSON(http.StatusOK, gin.H{
		"version":  snap.Version,
		"seq":      snap.Seq,
		"count":    len(listings),
		"listings": listings,
	})
}

// GetZones returns per-zone summaries over the full ranked snapshot.
func (h *Handler) GetZones(c *gin.Context) {
	snap := h.store.Current()

	byZone := make(map[string]*models.ZoneSummary)
	medianSums := make(map[string]int)
	medianCounts := make(map[string]int)
	cheapest := make(map[string]int)

	for _, l := range snap.Listings {
		s, ok := byZone[l.Zone]
		if !ok {
			s = &models.ZoneSummary{Zone: l.Zone}
			byZone[l.Zone] = s
		}
		s.ListingCount++

		if l.RentMedian1BHK == nil {
			continue
		}
		m := *l.RentMedian1BHK
		if medianCounts[l.Zone] == 0 || m < s.MinMedianRent {
			s.MinMedianRent = m
		}
		if medianCounts[l.Zone] == 0 || m > s.MaxMedianRent {
			s.MaxMedianRent = m
		}
		if medianCounts[l.Zone] == 0 || m < cheapest[l.Zone] {
			cheapest[l.Zone] = m
			s.CheapestArea = l.Area
		}
		medianSums[l.Zone] += m
		medianCounts[l.Zone]++
	}

	zones := make([]models.ZoneSummary, 0, len(byZone))
	for zone, s := range byZone {
		if n := medianCounts[zone]; n > 0 {
			s.AvgMedianRent = float64(medianSums[zone]) / float64(n)
		}
		zones = append(zones, *s)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].Zone < zones[j].Zone })

	c.JSON(http.StatusOK, zones)
}

// CompareAreas returns enriched rows for the named areas side by side.
func (h *Handler) CompareAreas(c *gin.Context) {
	raw := c.Query("areas")
	names := []string{}
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, strings.ToLower(name))
		}
	}
	if len(names) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least two area names are required"})
		return
	}

	snap := h.store.Current()
	found := make([]models.EnrichedListing, 0, len(names))
	for _, name := range names {
		for _, l := range snap.Listings {
			if strings.ToLower(l.Area) == name {
				found = append(found, l)
				break
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"version": snap.Version,
		"areas":   found,
	})
}

// ExportCSV streams the filtered view in the derived-table CSV contract.
func (h *Handler) ExportCSV(c *gin.Context) {
	var query FilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.WithError(err).Error("Failed to parse filter query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	listings := filterview.Apply(h.store.Current().Listings, query.filterSpec())

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="rent_compare_export.csv"`)
	if err := catalog.WriteExport(c.Writer, listings); err != nil {
		h.logger.WithError(err).Error("Failed to write CSV export")
	}
}

// GetSnapshot reports the current snapshot version without its rows.
func (h *Handler) GetSnapshot(c *gin.Context) {
	snap := h.store.Current()
	c.JSON(http.StatusOK, gin.H{
		"version":   snap.Version,
		"seq":       snap.Seq,
		"loaded_at": snap.LoadedAt,
		"listings":  len(snap.Listings),
	})
}

// Reload rebuilds the snapshot from the catalog source.
func (h *Handler) Reload(c *gin.Context) {
	snap, err := h.store.Reload()
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload snapshot")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "reloaded",
		"version":  snap.Version,
		"seq":      snap.Seq,
		"listings": len(snap.Listings),
	})
}

// ImportListings accepts a catalog CSV body and queues its rows for
// transactional upsert into the input table. The snapshot is replaced once
// batches land, so the response only acknowledges the enqueue.
func (h *Handler) ImportListings(c *gin.Context) {
	listings, err := catalog.Read(c.Request.Body)
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse import CSV")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(listings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import contains no rows"})
		return
	}

	batches, err := h.processor.EnqueueAll(listings)
	if err != nil {
		h.logger.WithError(err).Error("Failed to enqueue import batches")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ingest queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":         "queued",
		"rows":           len(listings),
		"queued_batches": batches,
	})
}
