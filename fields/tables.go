package fields

// PS maps every column name ps can print, across procps and BSD formats.
// Several signal, cgroup and thread columns have no field of their own and
// fold into Flags.
var PS = NewMapping("ps", map[string]Field{
	"PID":   PID,
	"PPID":  PPID,
	"PGID":  PGID,
	"SID":   SID,
	"SESS":  SID,
	"TPGID": TPGID,

	"USER":   User,
	"EUSER":  User,
	"FUSER":  User,
	"RUSER":  RUser,
	"UID":    UID,
	"EUID":   UID,
	"FUID":   UID,
	"RUID":   RUID,
	"GID":    GID,
	"EGID":   GID,
	"FGID":   GID,
	"SUPGID": GID,
	"SUPGRP": GID,
	"RGID":   RGID,

	"CMD":     Command,
	"COMM":    Command,
	"UCMD":    Command,
	"EXE":     Command,
	"COMMAND": Args,
	"ARGS":    Args,

	"STAT":  State,
	"S":     State,
	"STATE": State,

	"TTY":   TTY,
	"TT":    TTY,
	"TNAME": TTY,

	"TIME":     Time,
	"CPUTIME":  Time,
	"BSDTIME":  Time,
	"UTIME":    Time,
	"CUTIME":   Time,
	"CSTIME":   Time,
	"ETIME":    ElapsedTime,
	"ELAPSED":  ElapsedTime,
	"START":    StartTime,
	"STARTED":  StartTime,
	"LSTART":   StartTime,
	"STIME":    StartTime,
	"BSDSTART": StartTime,

	"%CPU": CPUPercent,
	"PCPU": CPUPercent,
	"CP":   CPUUtilization,
	"C":    CPUUtilization,
	"%MEM": MemPercent,
	"PMEM": MemPercent,

	"VSZ":    VSZ,
	"VSIZE":  VSZ,
	"SIZE":   VSZ,
	"SZ":     VSZ,
	"RSS":    RSS,
	"RSSIZE": RSS,
	"RSZ":    RSS,
	"SHARE":  RSS,
	"DRS":    RSS,
	"TRS":    RSS,

	"PRI":      Priority,
	"PRIORITY": Priority,
	"OPRI":     Priority,
	"INTPRI":   Priority,
	"PSR":      Priority,
	"RTPRIO":   Priority,
	"SCH":      Priority,
	"CLS":      Priority,
	"NI":       Nice,
	"NICE":     Nice,

	"WCHAN":  WChan,
	"NWCHAN": WChan,
	"MWCHAN": WChan,
	"ADDR":   WChan,

	"F":         Flags,
	"FLAG":      Flags,
	"FLAGS":     Flags,
	"PENDING":   Flags,
	"CAUGHT":    Flags,
	"IGNORED":   Flags,
	"BLOCKED":   Flags,
	"SIGMASK":   Flags,
	"SIGCATCH":  Flags,
	"SIGIGNORE": Flags,
	"SIGPEND":   Flags,
	"CONTEXT":   Flags,
	"LABEL":     Flags,
	"MACHINE":   Flags,
	"UNIT":      Flags,
	"SLICE":     Flags,
	"CGROUP":    Flags,
	"ENVIRON":   Flags,
	"STACKP":    Flags,
	"ESP":       Flags,
	"EIP":       Flags,
	"TMOUT":     Flags,
	"SCHED":     Flags,
	"POLICY":    Flags,
	"THCOUNT":   Flags,
	"NLWP":      Flags,
	"LWP":       Flags,
	"SPID":      Flags,
	"TID":       Flags,
	"JOBC":      Flags,
	"MAJFLT":    Flags,
	"MINFLT":    Flags,
	"CMAJFLT":   Flags,
	"CMINFLT":   Flags,
})

// Lsof maps lsof column names and their common variants.
var Lsof = NewMapping("lsof", map[string]Field{
	"COMMAND": Command,
	"CMD":     Command,
	"PROC":    Command,
	"PROCESS": Command,

	"PID": PID,

	"USER":     User,
	"OWNER":    User,
	"USERNAME": User,

	"FD":              FD,
	"FILE_DESCRIPTOR": FD,

	"TYPE":     Type,
	"FILETYPE": Type,

	"DEVICE": Device,
	"DEV":    Device,

	"SIZE/OFF": SizeOff,
	"SIZE":     SizeOff,
	"OFF":      SizeOff,
	"OFFSET":   SizeOff,

	"NODE":  Node,
	"INODE": Node,

	"NAME":     Name,
	"FILENAME": Name,
	"PATH":     Name,
	"FILEPATH": Name,
	"TARGET":   Name,
})
