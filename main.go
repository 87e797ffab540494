package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/gin-gonic/gin"
)

// Job points at a directory of sequentially numbered frames. The
// worker re-synthesizes every other frame from its neighbors and
// writes the doubled sequence to the output directory.
type Job struct {
	ID        int64  `json:"id"`
	FramesDir string `json:"framesDir"`
	OutputDir string `json:"outputDir"`
	Done      bool   `json:"done"`
}

var gQueue Queue
var sqlite Sqlite

func main() {
	// cli arguments
	configPath := flag.String("config_path", "./config.yml", "Path to the config yml file")
	flag.Parse()

	config, err := GetConfig(*configPath)
	if err != nil {
		log.Panic(err)
	}

	SetupLogger(config.LogPath)

	sqlite, err = NewSqlite(config.DatabasePath)
	if err != nil {
		log.Panic(err)
	}

	gQueue, err = NewQueue(&sqlite)
	if err != nil {
		log.Panic(err)
	}

	hub := NewHub()
	go hub.Run()

	r := gin.Default()
	r.Use(LoggerMiddleware())
	r.GET("/ping", ping)
	r.GET("/queue", listJobQueue)
	r.POST("/queue", addJobToQueue)
	r.DELETE("/queue/:id", delJobFromQueue)
	r.GET("/ws", hub.HandleConnections)

	ctx, cancel := context.WithCancel(context.Background())
	var waitGroup sync.WaitGroup

	poolWorker, err := NewPoolWorker(ctx, &gQueue, &config, hub, &waitGroup)
	if err != nil {
		log.Panic(err)
	}
	go poolWorker.RunDispatcher()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("Shutting down, waiting for in-flight jobs")
		cancel()
		waitGroup.Wait()
		os.Exit(0)
	}()

	r.Run(fmt.Sprintf("%s:%d", config.BindAddress, config.Port))
}

func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "ping",
	})
}

func addJobToQueue(c *gin.Context) {
	var job Job

	if err := c.ShouldBind(&job); err != nil {
		c.String(400, err.Error())
		return
	}

	if job.FramesDir == "" || job.OutputDir == "" {
		c.String(400, "framesDir and outputDir are required")
		return
	}

	log.WithFields(StructFields(job)).Debug()
	if err := gQueue.Enqueue(job); err != nil {
		c.String(500, err.Error())
		return
	}

	c.String(200, "Success")
}

func delJobFromQueue(c *gin.Context) {
	idS := c.Param("id")
	id, err := strconv.ParseInt(idS, 10, 64)
	if err != nil {
		c.String(400, err.Error())
		return
	}

	log.WithField("id", id).Debug()
	if _, _, err := gQueue.RemoveByID(id); err != nil {
		c.String(500, err.Error())
		return
	}
}

func listJobQueue(c *gin.Context) {
	c.JSON(200, gQueue.Items())
}
